package chat

import "github.com/kshitijx07/gemaverse-v2/internal/rooms"

type MessageType string

const (
	MessageChat  MessageType = "CHAT"
	MessageJoin  MessageType = "JOIN"
	MessageLeave MessageType = "LEAVE"
)

// Message is the payload fanned out to a room topic.
type Message struct {
	Type    MessageType `json:"type"              example:"CHAT"`
	Sender  string      `json:"sender"            example:"alice"`
	Content string      `json:"content,omitempty" example:"gg"`
}

const (
	publicTopic     = "/topic/public"
	roomTopicPrefix = "/topic/room/"
)

// TopicFor returns the broadcast topic of a room. The public lobby has its
// own shared topic; every other room gets a per-id topic.
func TopicFor(roomID string) string {
	if roomID == rooms.PublicRoomID {
		return publicTopic
	}
	return roomTopicPrefix + roomID
}
