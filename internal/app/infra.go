package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/shivam13669/storiesby-auth/internal/config"
	"github.com/shivam13669/storiesby-auth/internal/db"
	"github.com/shivam13669/storiesby-auth/internal/logger"
	"github.com/shivam13669/storiesby-auth/internal/redis"
)

type Infra struct {
	DB *db.DB

	// Redis is nil when no REDIS_ADDR is configured; the service runs
	// without the user cache in that case.
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Server) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: &db.DB{DB: sqlDB}}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	}

	return infra, nil
}
