package database

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RDB backs the settings read-through cache. It stays nil when REDIS_ADDR
// is not configured; callers treat a nil client as cache-off.
var RDB *redis.Client

func ConnectRedis(addr string) {
	if addr == "" {
		slog.Info("redis not configured, settings cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Warn("redis unreachable, settings cache disabled", "addr", addr, "error", err)
		return
	}

	RDB = client
	slog.Info("redis connection established", "addr", addr)
}
