package sessionstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

const redisInitTimeout = 10 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (debate.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RedisURL == "" {
			slog.Info("session store: using in-memory driver")
			return debate.NewMemoryStore(time.Now), nil
		}

		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL is invalid: %w", err)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), redisInitTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		slog.Info("session store: using redis driver")
		return NewRedisStore(client), nil
	})
}
