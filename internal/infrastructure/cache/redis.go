package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-actions/pkg/config"
)

// RedisStore caches finished job results in Redis
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

// NewRedisStore wraps rdb; results expire after ttl
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// SetResult caches a finished job result
func (s *RedisStore) SetResult(ctx context.Context, jobID uuid.UUID, resultJSON string) error {
	if err := s.rdb.Set(ctx, resultKey(jobID), resultJSON, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

// GetResult returns a cached job result
func (s *RedisStore) GetResult(ctx context.Context, jobID uuid.UUID) (string, bool, error) {
	value, err := s.rdb.Get(ctx, resultKey(jobID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cached result: %w", err)
	}
	return value, true, nil
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
