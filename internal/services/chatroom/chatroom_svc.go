package chatroom

import (
	"context"
	"strings"

	"github.com/kshitijx07/gemaverse-v2/internal/rooms"
)

// Leaver removes a user from a room and announces it.
type Leaver interface {
	Leave(ctx context.Context, roomID, username string) error
}

type IChatRoomService interface {
	ListRooms(ctx context.Context) []rooms.Summary
	GetRoom(ctx context.Context, roomID string) (*rooms.Summary, error)
	CreateRoom(ctx context.Context, name string, maxMembers int, createdBy string) (*rooms.Summary, error)
	JoinRoom(ctx context.Context, roomID, username string) (*rooms.Summary, error)
	LeaveRoom(ctx context.Context, roomID, username string) error
}

type chatRoomService struct {
	registry *rooms.Registry
	leaver   Leaver
}

var _ IChatRoomService = (*chatRoomService)(nil)

func NewChatRoomService(registry *rooms.Registry, leaver Leaver) IChatRoomService {
	return &chatRoomService{
		registry: registry,
		leaver:   leaver,
	}
}

func (svc *chatRoomService) ListRooms(_ context.Context) []rooms.Summary {
	list := svc.registry.List()
	out := make([]rooms.Summary, 0, len(list))
	for _, r := range list {
		out = append(out, r.Snapshot())
	}
	return out
}

func (svc *chatRoomService) GetRoom(_ context.Context, roomID string) (*rooms.Summary, error) {
	room, ok := svc.registry.Get(roomID)
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	snap := room.Snapshot()
	return &snap, nil
}

func (svc *chatRoomService) CreateRoom(_ context.Context, name string, maxMembers int, createdBy string) (*rooms.Summary, error) {
	room, err := svc.registry.Create(name, maxMembers, createdBy)
	if err != nil {
		return nil, err
	}
	snap := room.Snapshot()
	return &snap, nil
}

// JoinRoom admits username, rejecting only when the room is full and the
// user is not already inside.
func (svc *chatRoomService) JoinRoom(_ context.Context, roomID, username string) (*rooms.Summary, error) {
	if strings.TrimSpace(username) == "" {
		return nil, rooms.ErrMissingField
	}
	room, ok := svc.registry.Get(roomID)
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	if err := room.Join(username); err != nil {
		return nil, err
	}
	snap := room.Snapshot()
	return &snap, nil
}

func (svc *chatRoomService) LeaveRoom(ctx context.Context, roomID, username string) error {
	return svc.leaver.Leave(ctx, roomID, username)
}
