package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limiterRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit_EnvironmentBypass(t *testing.T) {
	for _, env := range []string{"test", "development", "stress", ""} {
		t.Run("env "+env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)

			allowed, err := CheckRateLimit(context.Background(), nil, "signup", "ip:1.2.3.4", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		})
	}
}

func TestCheckRateLimit_NilClientErrors(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	allowed, err := CheckRateLimit(context.Background(), nil, "signup", "ip:1.2.3.4", 1, time.Minute)
	require.Error(t, err)
	assert.False(t, allowed)
}

func TestCheckRateLimit_EnforcesWindow(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr, rdb := limiterRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "connect", "user:9", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "hit %d should be under the limit", i+1)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "connect", "user:9", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Counters are scoped per caller and per resource.
	allowed, err = CheckRateLimit(ctx, rdb, "connect", "user:10", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = CheckRateLimit(ctx, rdb, "signup", "user:9", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	// A fresh window resets the count.
	mr.FastForward(time.Minute + time.Second)
	allowed, err = CheckRateLimit(ctx, rdb, "connect", "user:9", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	newApp := func(handler fiber.Handler) *fiber.App {
		app := fiber.New()
		app.Get("/limited", handler, func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}
	hit := func(t *testing.T, app *fiber.App) int {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("bypassed in test env", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		app := newApp(RateLimit(nil, 1, time.Minute))

		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusOK, hit(t, app))
	})

	t.Run("enforced against redis", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, rdb := limiterRedis(t)
		app := newApp(RateLimit(rdb, 2, time.Minute))

		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
	})

	t.Run("fail-open without redis", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		app := newApp(RateLimit(nil, 1, time.Minute))

		assert.Equal(t, http.StatusOK, hit(t, app))
	})

	t.Run("fail-closed without redis", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		app := newApp(RateLimitWithPolicy(nil, 1, time.Minute, FailClosed))

		assert.Equal(t, http.StatusServiceUnavailable, hit(t, app))
	})
}
