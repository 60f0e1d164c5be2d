package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HttpServerPort)
	assert.Equal(t, BroadcastLocal, cfg.BroadcastBackend)
	assert.False(t, cfg.PostgresEnabled)
	assert.Equal(t, 10*time.Second, cfg.RoomSyncInterval)
	assert.Equal(t, "General Lobby", cfg.LobbyName)
	assert.Equal(t, 100, cfg.LobbyCapacity)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BROADCAST_BACKEND", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ROOM_SYNC_INTERVAL", "30s")
	t.Setenv("LOBBY_CAPACITY", "250")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BroadcastRedis, cfg.BroadcastBackend)
	assert.Equal(t, uint16(6380), cfg.RedisPort)
	assert.Equal(t, 30*time.Second, cfg.RoomSyncInterval)
	assert.Equal(t, 250, cfg.LobbyCapacity)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "unknown backend", key: "BROADCAST_BACKEND", value: "kafka"},
		{name: "lobby too small", key: "LOBBY_CAPACITY", value: "1"},
		{name: "sync too fast", key: "ROOM_SYNC_INTERVAL", value: "100ms"},
		{name: "port not a number", key: "HTTP_SERVER_PORT", value: "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
