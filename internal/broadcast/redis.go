package broadcast

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "chat:"

// ChannelFor maps a topic to its Redis Pub/Sub channel.
func ChannelFor(topic string) string { return channelPrefix + topic }

// TopicFromChannel is the inverse of ChannelFor.
func TopicFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return "", false
	}
	return strings.TrimPrefix(channel, channelPrefix), true
}

// Redis publishes to a channel every instance subscribes to, so subscribers
// connected to any instance receive the message.
type Redis struct {
	rdc *redis.Client
}

var _ chat.Broadcaster = (*Redis)(nil)

func NewRedis(rdc *redis.Client) *Redis { return &Redis{rdc: rdc} }

func (r *Redis) Broadcast(ctx context.Context, topic string, msg chat.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.rdc.Publish(ctx, ChannelFor(topic), string(payload)).Err()
}
