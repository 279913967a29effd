package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/config"
	"github.com/Sandy4321/MovieRecommend/internal/logging"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	defaultTTL = time.Hour
)

// InitRedis connects the package client. An empty address leaves caching
// disabled; every helper is then a no-op.
func InitRedis(ctx context.Context, cfg config.RedisConfig) error {
	log := logging.Component("redis")
	if cfg.Addr == "" {
		log.Info().Msg("no redis address configured, cache disabled")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	client = c
	if cfg.TTL > 0 {
		defaultTTL = cfg.TTL
	}
	log.Info().Str("addr", cfg.Addr).Dur("ttl", defaultTTL).Msg("redis connected")
	return nil
}

// Enabled reports whether a client is connected.
func Enabled() bool { return client != nil }

// Close releases the client.
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// GetJSON decodes the value at key into dest and reports whether it existed.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value as JSON under key. ttl <= 0 uses the configured TTL.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Delete removes keys; missing keys are not an error.
func Delete(ctx context.Context, keys ...string) error {
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}
