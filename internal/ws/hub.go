package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub keeps local subscriber sets per topic.
type Hub struct {
	topics sync.Map // topic -> *subscribers
}

func NewHub() *Hub { return &Hub{} }

// Deliver wraps an encoded chat message into a topic frame and writes it to
// every local subscriber of topic.
func (h *Hub) Deliver(topic string, payload []byte) {
	v, ok := h.topics.Load(topic)
	if !ok {
		return
	}
	frame, err := encodeTopicFrame(topic, payload)
	if err != nil {
		zap.L().Warn("ws.encode_frame_failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	v.(*subscribers).broadcast(frame)
}

func (h *Hub) Join(topic string, c *clientConn) {
	s, _ := h.topics.LoadOrStore(topic, newSubscribers())
	s.(*subscribers).add(c)
}

func (h *Hub) Leave(topic string, c *clientConn) {
	if v, ok := h.topics.Load(topic); ok {
		v.(*subscribers).remove(c)
	}
}

// Subscribers returns how many local connections listen on topic.
func (h *Hub) Subscribers(topic string) int {
	if v, ok := h.topics.Load(topic); ok {
		return v.(*subscribers).size()
	}
	return 0
}

func encodeTopicFrame(topic string, payload []byte) ([]byte, error) {
	body, err := json.Marshal(TopicEvent{Topic: topic, Message: json.RawMessage(payload)})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: EventMessage, Body: body})
}
