package rooms

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Lobby(t *testing.T) {
	reg := NewRegistry("General Lobby", 100)

	list := reg.List()
	require.Len(t, list, 1)

	lobby := list[0].Snapshot()
	assert.Equal(t, PublicRoomID, lobby.ID)
	assert.Equal(t, "General Lobby", lobby.Name)
	assert.Equal(t, 100, lobby.MaxMembers)
	assert.Equal(t, SystemCreator, lobby.CreatedBy)
	assert.Zero(t, lobby.CurrentMembers)
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry("General Lobby", 100)

	tests := []struct {
		name      string
		roomName  string
		capacity  int
		createdBy string
		wantErr   error
	}{
		{name: "valid", roomName: "Duo", capacity: 2, createdBy: "alice"},
		{name: "capacity below minimum", roomName: "X", capacity: 1, createdBy: "a", wantErr: ErrInvalidCapacity},
		{name: "zero capacity", roomName: "X", capacity: 0, createdBy: "a", wantErr: ErrInvalidCapacity},
		{name: "missing name", roomName: "  ", capacity: 4, createdBy: "a", wantErr: ErrMissingField},
		{name: "missing creator", roomName: "Y", capacity: 4, createdBy: "", wantErr: ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := reg.Create(tt.roomName, tt.capacity, tt.createdBy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, room)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, room.ID())
			assert.Equal(t, tt.capacity, room.Capacity())
			assert.Zero(t, room.CurrentMemberCount())

			got, ok := reg.Get(room.ID())
			require.True(t, ok)
			assert.Same(t, room, got)
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := NewRegistry("General Lobby", 100)
	_, ok := reg.Get("does-not-exist")
	assert.False(t, ok)
}

func TestRegistry_ListKeepsInsertionOrder(t *testing.T) {
	reg := NewRegistry("General Lobby", 100)
	a, _ := reg.Create("A", 2, "u")
	b, _ := reg.Create("B", 2, "u")

	list := reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, PublicRoomID, list[0].ID())
	assert.Equal(t, a.ID(), list[1].ID())
	assert.Equal(t, b.ID(), list[2].ID())
}

func TestRegistry_ConcurrentCreateAndList(t *testing.T) {
	reg := NewRegistry("General Lobby", 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Create(fmt.Sprintf("room-%d", i), 4, "u")
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			list := reg.List()
			assert.Equal(t, PublicRoomID, list[0].ID())
		}()
	}
	wg.Wait()

	ids := map[string]struct{}{}
	for _, r := range reg.List() {
		ids[r.ID()] = struct{}{}
	}
	assert.Len(t, ids, 21)
}
