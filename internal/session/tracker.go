package session

import (
	"sync"

	"github.com/google/uuid"
)

// ID identifies one live transport connection.
type ID string

func NewID() ID { return ID(uuid.NewString()) }

// Presence is the room a connection last announced itself into.
type Presence struct {
	Username string
	RoomID   string
}

// Tracker maps connections to their presence. Every operation holds the same
// mutex, so a record and a resolve for one session never interleave.
type Tracker struct {
	mu      sync.Mutex
	entries map[ID]Presence
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[ID]Presence)}
}

// Record stores the presence for id and returns the one it replaced, if any.
func (t *Tracker) Record(id ID, username, roomID string) (Presence, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, had := t.entries[id]
	t.entries[id] = Presence{Username: username, RoomID: roomID}
	return prev, had
}

// ResolveAndClear removes and returns the presence for id.
func (t *Tracker) ResolveAndClear(id ID) (Presence, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	return p, ok
}

func (t *Tracker) Lookup(id ID) (Presence, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[id]
	return p, ok
}

// ClearPresence drops every session that is present as username in roomID
// and returns how many were dropped.
func (t *Tracker) ClearPresence(username, roomID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for id, p := range t.entries {
		if p.Username == username && p.RoomID == roomID {
			delete(t.entries, id)
			n++
		}
	}
	return n
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
