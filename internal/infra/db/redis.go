package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"grocery-api/internal/pkg/config"
	"grocery-api/internal/pkg/errs"
)

// ConnectRedis opens and pings a Redis client for verification state.
func ConnectRedis(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}
