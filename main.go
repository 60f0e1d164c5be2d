package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kshitijx07/gemaverse-v2/internal/broadcast"
	"github.com/kshitijx07/gemaverse-v2/internal/config"
	"github.com/kshitijx07/gemaverse-v2/internal/database/db_client"
	"github.com/kshitijx07/gemaverse-v2/internal/http/http_server"
	"github.com/kshitijx07/gemaverse-v2/internal/redis/redis_client"
	"github.com/kshitijx07/gemaverse-v2/internal/rooms"
	"github.com/kshitijx07/gemaverse-v2/internal/roomsync"
	"github.com/kshitijx07/gemaverse-v2/internal/services/chat"
	"github.com/kshitijx07/gemaverse-v2/internal/services/chatroom"
	"github.com/kshitijx07/gemaverse-v2/internal/session"
	"github.com/kshitijx07/gemaverse-v2/internal/ws"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	var err error
	var cfg *config.Config
	var redisClient *redis.Client
	var broadcaster chat.Broadcaster

	// 1. Load configuration
	cfg, err = config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Room state: registry (with the lobby) and per-connection presence
	registry := rooms.NewRegistry(cfg.LobbyName, cfg.LobbyCapacity)
	sessions := session.NewTracker()

	// 4. WebSockets hub + broadcaster (in-process or Redis fan‑out)
	hub := ws.NewHub()
	switch cfg.BroadcastBackend {
	case config.BroadcastRedis:
		redisClient, err = redis_client.NewRedisClient(cfg.RedisHost, int(cfg.RedisPort))
		if err != nil {
			Log.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()
		Log.Debug("Redis client created successfully")
		broadcaster = broadcast.NewRedis(redisClient)
	default:
		broadcaster = broadcast.NewLocal(hub)
	}

	// 5. Services
	chatService := chat.NewChatService(registry, sessions, broadcaster)
	chatRoomService := chatroom.NewChatRoomService(registry, chatService)

	// 6. Background: room snapshots ➜ Postgres
	if cfg.PostgresEnabled {
		pgDb, err := db_client.Open(ctx, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
		if err != nil {
			Log.Fatal("pg-open", zap.Error(err))
		}
		defer pgDb.Close()

		if err := roomsync.EnsureSchema(ctx, pgDb); err != nil {
			Log.Fatal("pg-schema", zap.Error(err))
		}
		roomsync.Run(ctx, chatRoomService, pgDb, cfg.RoomSyncInterval)
	}

	// 7. Initialize the WS server (nil Redis client → no upstream subscriptions)
	wsSrv := ws.NewWsServer(hub, redisClient, chatService)

	// 8. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, chatRoomService)
	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
	Log.Info("HTTP server stopped")
}
