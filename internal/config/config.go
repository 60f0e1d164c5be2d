package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	BroadcastLocal = "local"
	BroadcastRedis = "redis"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8080" validate:"min=1000,max=65535"`

	// local: in-process fan-out only; redis: Pub/Sub across instances.
	BroadcastBackend string `env:"BROADCAST_BACKEND" envDefault:"local" validate:"oneof=local redis"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort uint16 `env:"REDIS_PORT" envDefault:"6379"   validate:"min=1000,max=65535"`

	PostgresEnabled  bool   `env:"POSTGRES_ENABLED"  envDefault:"false"`
	PostgresHost     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT"     envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER"     envDefault:"gemaverse"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"gemaverse"`
	PostgresDb       string `env:"POSTGRES_DB"       envDefault:"gemaverse"`

	RoomSyncInterval time.Duration `env:"ROOM_SYNC_INTERVAL" envDefault:"10s" validate:"min=1s"`

	LobbyName     string `env:"LOBBY_NAME"     envDefault:"General Lobby" validate:"required"`
	LobbyCapacity int    `env:"LOBBY_CAPACITY" envDefault:"100"           validate:"min=2"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
