package broadcast

import (
	"context"
	"encoding/json"

	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"
)

// Deliverer pushes an encoded message to the local subscribers of a topic.
type Deliverer interface {
	Deliver(topic string, payload []byte)
}

// Local delivers straight into this process' subscribers.
type Local struct {
	out Deliverer
}

var _ chat.Broadcaster = (*Local)(nil)

func NewLocal(out Deliverer) *Local { return &Local{out: out} }

func (l *Local) Broadcast(_ context.Context, topic string, msg chat.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	l.out.Deliver(topic, payload)
	return nil
}
