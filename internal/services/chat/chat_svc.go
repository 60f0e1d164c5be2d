package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/kshitijx07/gemaverse-v2/internal/rooms"
	"github.com/kshitijx07/gemaverse-v2/internal/session"

	"go.uber.org/zap"
)

// Broadcaster delivers a message to every current subscriber of a topic.
type Broadcaster interface {
	Broadcast(ctx context.Context, topic string, msg Message) error
}

type IChatService interface {
	// Topic resolves the topic of an existing room.
	Topic(roomID string) (string, error)
	AnnounceJoin(ctx context.Context, sessionID session.ID, roomID string, msg Message) error
	SendMessage(ctx context.Context, roomID string, msg Message) error
	Leave(ctx context.Context, roomID, username string) error
	// Disconnect ends the presence of a closing connection and returns the
	// presence it ended, if a leave was announced. It never fails.
	Disconnect(ctx context.Context, sessionID session.ID) (session.Presence, bool)
}

type chatService struct {
	registry *rooms.Registry
	sessions *session.Tracker
	bc       Broadcaster

	// leaveMu makes "remove member, clear presence, decide who announces"
	// one step, so a leave racing a disconnect announces once.
	leaveMu sync.Mutex
}

var _ IChatService = (*chatService)(nil)

func NewChatService(registry *rooms.Registry, sessions *session.Tracker, bc Broadcaster) IChatService {
	return &chatService{
		registry: registry,
		sessions: sessions,
		bc:       bc,
	}
}

func (svc *chatService) Topic(roomID string) (string, error) {
	if _, ok := svc.registry.Get(roomID); !ok {
		return "", rooms.ErrRoomNotFound
	}
	return TopicFor(roomID), nil
}

// AnnounceJoin records the session's presence and tells the room. Membership
// is granted by the room-join endpoint, not here; a session that moves rooms
// keeps its old membership until that user leaves it.
func (svc *chatService) AnnounceJoin(ctx context.Context, sessionID session.ID, roomID string, msg Message) error {
	if strings.TrimSpace(msg.Sender) == "" {
		return rooms.ErrMissingField
	}
	if _, ok := svc.registry.Get(roomID); !ok {
		return rooms.ErrRoomNotFound
	}

	if prev, had := svc.sessions.Record(sessionID, msg.Sender, roomID); had && prev.RoomID != roomID {
		zap.L().Debug("chat.presence_moved",
			zap.String("session", string(sessionID)),
			zap.String("from", prev.RoomID),
			zap.String("to", roomID),
		)
	}

	msg.Type = MessageJoin
	svc.publish(ctx, roomID, msg)
	return nil
}

// SendMessage forwards msg unmodified. Membership is not re-checked here.
func (svc *chatService) SendMessage(ctx context.Context, roomID string, msg Message) error {
	if _, ok := svc.registry.Get(roomID); !ok {
		return rooms.ErrRoomNotFound
	}
	svc.publish(ctx, roomID, msg)
	return nil
}

// Leave removes username from the room and announces it. Sessions present
// as that user in the room are cleared so their disconnect stays silent.
func (svc *chatService) Leave(ctx context.Context, roomID, username string) error {
	if strings.TrimSpace(username) == "" {
		return rooms.ErrMissingField
	}
	room, ok := svc.registry.Get(roomID)
	if !ok {
		return rooms.ErrRoomNotFound
	}

	svc.leaveMu.Lock()
	wasMember := room.RemoveMember(username)
	cleared := svc.sessions.ClearPresence(username, roomID)
	svc.leaveMu.Unlock()
	if !wasMember && cleared == 0 {
		return nil
	}

	svc.publish(ctx, roomID, Message{Type: MessageLeave, Sender: username})
	return nil
}

func (svc *chatService) Disconnect(ctx context.Context, sessionID session.ID) (session.Presence, bool) {
	svc.leaveMu.Lock()
	p, ok := svc.sessions.ResolveAndClear(sessionID)
	if !ok {
		svc.leaveMu.Unlock()
		return session.Presence{}, false
	}
	room, found := svc.registry.Get(p.RoomID)
	if found {
		room.RemoveMember(p.Username)
	}
	svc.leaveMu.Unlock()

	if !found {
		zap.L().Debug("chat.disconnect_unknown_room",
			zap.String("session", string(sessionID)),
			zap.String("room", p.RoomID),
		)
		return session.Presence{}, false
	}

	zap.L().Info("chat.disconnect",
		zap.String("session", string(sessionID)),
		zap.String("user", p.Username),
		zap.String("room", p.RoomID),
	)
	svc.publish(ctx, p.RoomID, Message{Type: MessageLeave, Sender: p.Username})
	return p, true
}

// publish hands msg to the broadcaster. Delivery is best effort, so a
// transport failure is logged and swallowed.
func (svc *chatService) publish(ctx context.Context, roomID string, msg Message) {
	if err := svc.bc.Broadcast(ctx, TopicFor(roomID), msg); err != nil {
		zap.L().Warn("chat.broadcast_failed",
			zap.String("room", roomID),
			zap.String("type", string(msg.Type)),
			zap.Error(err),
		)
	}
}
