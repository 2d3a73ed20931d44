package usecase

import (
	"context"
	"time"
)

// TokenExchanger trades a single-use request token for an access token.
type TokenExchanger interface {
	GenerateSession(ctx context.Context, requestToken, apiSecret string) (string, error)
}

// TokenCache stores access tokens between runs. Get returns ErrTokenNotCached on a miss.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
