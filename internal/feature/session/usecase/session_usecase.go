// Package usecase implements the session bootstrap of the brokerage API.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stock_fetcher/internal/feature/session/domain"
)

// Credentials identify the app and the login that produced RequestToken.
type Credentials struct {
	APIKey       string
	APISecret    string
	RequestToken string
}

// SessionUsecase obtains the access token for one run.
type SessionUsecase struct {
	exchanger TokenExchanger
	cache     TokenCache
	creds     Credentials
	ttl       func() time.Duration
}

// NewSessionUsecase creates a new SessionUsecase. cache may be nil; ttl reports
// how long a freshly issued token stays valid.
func NewSessionUsecase(exchanger TokenExchanger, cache TokenCache, creds Credentials, ttl func() time.Duration) *SessionUsecase {
	return &SessionUsecase{
		exchanger: exchanger,
		cache:     cache,
		creds:     creds,
		ttl:       ttl,
	}
}

// cacheKey scopes a cached token to the login that produced it, so a new
// REQUEST_TOKEN never reuses a token issued for an older one.
func (u *SessionUsecase) cacheKey() string {
	return u.creds.APIKey + ":" + u.creds.RequestToken
}

// Bootstrap returns an access token, from the cache when one is stored for the
// current credentials and otherwise by exchanging the request token. Cache
// failures are logged and never returned.
func (u *SessionUsecase) Bootstrap(ctx context.Context) (string, error) {
	if u.creds.APIKey == "" || u.creds.APISecret == "" || u.creds.RequestToken == "" {
		return "", fmt.Errorf("%w: missing credentials", domain.ErrAuth)
	}

	if token, ok := u.cached(ctx); ok {
		slog.Info("using cached access token")
		return token, nil
	}

	token, err := u.exchanger.GenerateSession(ctx, u.creds.RequestToken, u.creds.APISecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}
	slog.Info("session established")

	if u.cache != nil {
		ttl := u.ttl()
		if ttl <= 0 {
			return token, nil
		}
		if err := u.cache.Set(ctx, u.cacheKey(), token, ttl); err != nil {
			slog.Warn("failed to cache access token", "error", err)
		}
	}
	return token, nil
}

// Invalidate evicts the cached token after the API rejected it, so the next
// run exchanges the request token again.
func (u *SessionUsecase) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, u.cacheKey()); err != nil {
		slog.Warn("failed to evict cached access token", "error", err)
		return
	}
	slog.Info("cached access token evicted")
}

func (u *SessionUsecase) cached(ctx context.Context) (string, bool) {
	if u.cache == nil {
		return "", false
	}
	token, err := u.cache.Get(ctx, u.cacheKey())
	if err != nil {
		if !errors.Is(err, ErrTokenNotCached) {
			slog.Warn("failed to read cached access token", "error", err)
		}
		return "", false
	}
	return token, token != ""
}
