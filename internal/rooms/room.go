package rooms

import (
	"sort"
	"sync"
	"time"
)

// Summary is the read-only view of a room handed to API callers.
type Summary struct {
	ID             string    `json:"id"             example:"public"`
	Name           string    `json:"name"           example:"General Lobby"`
	MaxMembers     int       `json:"maxMembers"     example:"100"`
	CurrentMembers int       `json:"currentMembers" example:"3"`
	CreatedBy      string    `json:"createdBy"      example:"System"`
	Members        []string  `json:"members"`
	CreatedAt      time.Time `json:"createdAt"      example:"2025-07-27T16:05:05Z"`
} // @name Room

// Room is a capacity-bounded set of usernames. Identity fields never change
// after creation; the member set is only touched through the methods below.
type Room struct {
	id        string
	name      string
	capacity  int
	createdBy string
	createdAt time.Time

	mu      sync.RWMutex
	members map[string]struct{}
}

func newRoom(id, name string, capacity int, createdBy string) *Room {
	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		createdBy: createdBy,
		createdAt: time.Now().UTC(),
		members:   make(map[string]struct{}),
	}
}

func (r *Room) ID() string        { return r.id }
func (r *Room) Name() string      { return r.name }
func (r *Room) Capacity() int     { return r.capacity }
func (r *Room) CreatedBy() string { return r.createdBy }

// AddMember inserts username and reports whether the set changed.
// It returns false both when the room is full and when the user is already
// a member; use Join when the two cases must be told apart.
func (r *Room) AddMember(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) >= r.capacity {
		return false
	}
	if _, ok := r.members[username]; ok {
		return false
	}
	r.members[username] = struct{}{}
	return true
}

// Join admits username unless the room is full. Re-joining as an existing
// member succeeds even at capacity.
func (r *Room) Join(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[username]; ok {
		return nil
	}
	if len(r.members) >= r.capacity {
		return ErrRoomFull
	}
	r.members[username] = struct{}{}
	return nil
}

// RemoveMember drops username and reports whether it was present.
func (r *Room) RemoveMember(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[username]; !ok {
		return false
	}
	delete(r.members, username)
	return true
}

func (r *Room) HasMember(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[username]
	return ok
}

func (r *Room) CurrentMemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Snapshot copies the room state under a single read lock, so the member
// list and the count always agree.
func (r *Room) Snapshot() Summary {
	r.mu.RLock()
	members := make([]string, 0, len(r.members))
	for m := range r.members {
		members = append(members, m)
	}
	r.mu.RUnlock()
	sort.Strings(members)

	return Summary{
		ID:             r.id,
		Name:           r.name,
		MaxMembers:     r.capacity,
		CurrentMembers: len(members),
		CreatedBy:      r.createdBy,
		Members:        members,
		CreatedAt:      r.createdAt,
	}
}
