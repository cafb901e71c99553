package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// RedisRepository stores session fields as individual Redis keys so each
// field can carry its own TTL (the OAuth2 signup token expires long before
// the token pair does).
// Key format: session:<session_id>:<field>
type RedisRepository struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisRepository wraps the given Redis client.
func NewRedisRepository(client *redis.Client, defaultTTL time.Duration) *RedisRepository {
	if defaultTTL <= 0 {
		defaultTTL = defaultSessionTTL
	}
	return &RedisRepository{client: client, defaultTTL: defaultTTL}
}

func (r *RedisRepository) Get(ctx context.Context, sessionID, field string) (string, error) {
	val, err := r.client.Get(ctx, r.key(sessionID, field)).Result()
	if err == redis.Nil {
		return "", domain.ErrSessionFieldNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session get %s: %w", field, err)
	}
	return val, nil
}

func (r *RedisRepository) Set(ctx context.Context, sessionID, field, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if err := r.client.Set(ctx, r.key(sessionID, field), value, ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", field, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = r.key(sessionID, f)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (r *RedisRepository) key(sessionID, field string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, field)
}
