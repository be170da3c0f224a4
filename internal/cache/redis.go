// Package cache provides the Redis client plus cache-aside helpers. The whole
// package degrades to a no-op when Redis is unreachable; callers never depend
// on the cache being there.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"venturelink/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// metricsHook counts failed commands so a flapping Redis shows up on the
// dashboard instead of silently degrading every request to a DB read.
type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to the address from REDIS_URL, which may be a bare
// host:port or a redis:// URL. A failed connection leaves the package
// cacheless rather than failing startup.
func InitRedis(addr string) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("invalid REDIS_URL, running without cache", "addr", addr, "error", err)
			client = nil
			return
		}
		opts = parsed
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unreachable, running without cache", "addr", opts.Addr, "error", err)
		client = nil
		return
	}

	client = c
	middleware.Logger.Info("redis connected", "addr", opts.Addr)
}

// GetClient returns the shared client, or nil when the cache is disabled.
func GetClient() *redis.Client {
	return client
}
