package rooms

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// PublicRoomID is the well-known id of the lobby created at start-up.
	PublicRoomID = "public"

	MinCapacity   = 2
	SystemCreator = "System"
)

// Registry owns every room of the process. Rooms are never removed, so
// lookups only contend with the rare Create.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Room
	order []*Room
}

// NewRegistry returns a registry holding only the lobby.
func NewRegistry(lobbyName string, lobbyCapacity int) *Registry {
	if lobbyCapacity < MinCapacity {
		lobbyCapacity = MinCapacity
	}
	reg := &Registry{byID: make(map[string]*Room)}
	reg.store(newRoom(PublicRoomID, lobbyName, lobbyCapacity, SystemCreator))
	return reg
}

// Create mints a new empty room with a fresh id.
func (reg *Registry) Create(name string, capacity int, createdBy string) (*Room, error) {
	if capacity < MinCapacity {
		return nil, ErrInvalidCapacity
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(createdBy) == "" {
		return nil, ErrMissingField
	}

	room := newRoom(uuid.NewString(), name, capacity, createdBy)
	reg.store(room)
	return room, nil
}

func (reg *Registry) store(room *Room) {
	reg.mu.Lock()
	reg.byID[room.id] = room
	reg.order = append(reg.order, room)
	reg.mu.Unlock()
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.byID[roomID]
	return room, ok
}

// List returns the rooms in creation order. The returned slice is a copy.
func (reg *Registry) List() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Room, len(reg.order))
	copy(out, reg.order)
	return out
}
