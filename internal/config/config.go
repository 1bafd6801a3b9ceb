package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server holds configuration for the auth service binary.
type Server struct {
	AppPort string `env:"APP_PORT" envDefault:"5000"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
}

// Client holds configuration for the operator CLI binary.
type Client struct {
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:5000"`

	// SessionDBPath is the local SQLite file holding the persisted
	// session snapshot.
	SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"storiesby-session.db"`
}

func LoadServer() (Server, error) {
	_ = godotenv.Load()

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func LoadClient() (Client, error) {
	_ = godotenv.Load()

	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return Client{}, err
	}
	return cfg, nil
}
