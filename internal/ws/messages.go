package ws

import (
	"encoding/json"

	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"
)

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "chat/sendMessage"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

const (
	EventSubscribe   = "chat/subscribe"
	EventUnsubscribe = "chat/unsubscribe"
	EventAddUser     = "chat/addUser"
	EventSendMessage = "chat/sendMessage"
	EventLeave       = "chat/leave"

	// server push
	EventMessage = "chat/message"
	EventError   = "error"
)

// TopicEvent is the body of a "chat/message" push.
type TopicEvent struct {
	Topic   string          `json:"topic"`
	Message json.RawMessage `json:"message"`
}

// ──────────────────────────── Request / Response DTOs ─────────────────────────

// RoomRequest is the body for "chat/subscribe" and "chat/unsubscribe".
type RoomRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

// AddUserRequest is the body for "chat/addUser".
type AddUserRequest struct {
	RoomID  string `json:"room_id" validate:"required"`
	Sender  string `json:"sender"  validate:"required"`
	Content string `json:"content"`
}

// SendMessageRequest is the body for "chat/sendMessage".
type SendMessageRequest struct {
	RoomID  string           `json:"room_id" validate:"required"`
	Type    chat.MessageType `json:"type"    validate:"omitempty,oneof=CHAT JOIN LEAVE"`
	Sender  string           `json:"sender"  validate:"required"`
	Content string           `json:"content"`
}

type LeaveRequest struct{}

type SubscribeAck struct {
	Topic string `json:"topic"`
}

type LeaveAck struct {
	Left bool `json:"left"`
}

// Empty ACK body (useful for many handlers).
type AckBody struct{}

// ErrorBody is returned for failures.
type ErrorBody struct {
	Error string `json:"error"`
}
