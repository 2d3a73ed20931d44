// Package session stores brokerage access tokens in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_fetcher/internal/feature/session/usecase"
)

var _ usecase.TokenCache = (*TokenRedis)(nil)

// TokenRedis implements usecase.TokenCache using Redis.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for the access token cached under key.
func (r *TokenRedis) tokenKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Get returns the access token cached under key.
func (r *TokenRedis) Get(ctx context.Context, key string) (string, error) {
	token, err := r.client.Get(ctx, r.tokenKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", usecase.ErrTokenNotCached
		}
		return "", err
	}
	return token, nil
}

// Set caches token under key until ttl elapses.
func (r *TokenRedis) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}
	return r.client.Set(ctx, r.tokenKey(key), token, ttl).Err()
}

// Delete removes the cached token under key.
func (r *TokenRedis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.tokenKey(key)).Err()
}
