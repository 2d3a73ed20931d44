package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock_fetcher/internal/feature/session/domain"
)

// mockTokenExchanger is a mock implementation of TokenExchanger.
type mockTokenExchanger struct {
	GenerateSessionFunc func(ctx context.Context, requestToken, apiSecret string) (string, error)
	Calls               int
}

func (m *mockTokenExchanger) GenerateSession(ctx context.Context, requestToken, apiSecret string) (string, error) {
	m.Calls++
	if m.GenerateSessionFunc != nil {
		return m.GenerateSessionFunc(ctx, requestToken, apiSecret)
	}
	return "fresh-token", nil
}

// mockTokenCache is a mock implementation of TokenCache backed by a map.
type mockTokenCache struct {
	tokens    map[string]string
	GetErr    error
	SetErr    error
	DeleteErr error
	SetTTLs   []time.Duration
	Deleted   []string
}

func newMockTokenCache() *mockTokenCache {
	return &mockTokenCache{tokens: make(map[string]string)}
}

func (m *mockTokenCache) Get(_ context.Context, key string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	token, ok := m.tokens[key]
	if !ok {
		return "", ErrTokenNotCached
	}
	return token, nil
}

func (m *mockTokenCache) Set(_ context.Context, key, token string, ttl time.Duration) error {
	m.SetTTLs = append(m.SetTTLs, ttl)
	if m.SetErr != nil {
		return m.SetErr
	}
	m.tokens[key] = token
	return nil
}

func (m *mockTokenCache) Delete(_ context.Context, key string) error {
	m.Deleted = append(m.Deleted, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.tokens, key)
	return nil
}

const testCacheKey = "key:req"

var testCreds = Credentials{APIKey: "key", APISecret: "secret", RequestToken: "req"}

func fixedTTL() time.Duration { return 3 * time.Hour }

func TestSessionUsecase_Bootstrap_Exchange(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{
		GenerateSessionFunc: func(_ context.Context, requestToken, apiSecret string) (string, error) {
			if requestToken != "req" || apiSecret != "secret" {
				t.Errorf("unexpected arguments %q, %q", requestToken, apiSecret)
			}
			return "acc", nil
		},
	}
	uc := NewSessionUsecase(exchanger, nil, testCreds, fixedTTL)

	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "acc" {
		t.Errorf("expected token acc, got %q", token)
	}
	if exchanger.Calls != 1 {
		t.Errorf("expected 1 exchange, got %d", exchanger.Calls)
	}
}

func TestSessionUsecase_Bootstrap_Rejected(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{
		GenerateSessionFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("kite http 403: TokenException: Token is invalid or has expired.")
		},
	}
	cache := newMockTokenCache()
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	_, err := uc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if len(cache.SetTTLs) != 0 {
		t.Errorf("nothing should be cached after a rejection")
	}
}

func TestSessionUsecase_Bootstrap_MissingCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no api key", Credentials{APISecret: "s", RequestToken: "r"}},
		{"no secret", Credentials{APIKey: "k", RequestToken: "r"}},
		{"no request token", Credentials{APIKey: "k", APISecret: "s"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exchanger := &mockTokenExchanger{}
			uc := NewSessionUsecase(exchanger, nil, tt.creds, fixedTTL)

			_, err := uc.Bootstrap(context.Background())
			if !errors.Is(err, domain.ErrAuth) {
				t.Fatalf("expected ErrAuth, got %v", err)
			}
			if exchanger.Calls != 0 {
				t.Errorf("expected no exchange, got %d", exchanger.Calls)
			}
		})
	}
}

func TestSessionUsecase_Bootstrap_CacheHit(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{}
	cache := newMockTokenCache()
	cache.tokens[testCacheKey] = "cached"
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "cached" {
		t.Errorf("expected cached token, got %q", token)
	}
	if exchanger.Calls != 0 {
		t.Errorf("expected no exchange on cache hit, got %d", exchanger.Calls)
	}
}

func TestSessionUsecase_Bootstrap_CacheMissStoresToken(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{}
	cache := newMockTokenCache()
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("expected fresh token, got %q", token)
	}
	if cache.tokens[testCacheKey] != "fresh-token" {
		t.Errorf("expected token cached under api key and request token, got %v", cache.tokens)
	}
	if len(cache.SetTTLs) != 1 || cache.SetTTLs[0] != 3*time.Hour {
		t.Errorf("expected one Set with ttl 3h, got %v", cache.SetTTLs)
	}
}

func TestSessionUsecase_Bootstrap_CacheFailuresAreNotFatal(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{}
	cache := newMockTokenCache()
	cache.GetErr = errors.New("connection refused")
	cache.SetErr = errors.New("connection refused")
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("expected fresh token, got %q", token)
	}
	if exchanger.Calls != 1 {
		t.Errorf("expected 1 exchange, got %d", exchanger.Calls)
	}
}

func TestSessionUsecase_Bootstrap_ExpiredTTLSkipsCache(t *testing.T) {
	t.Parallel()

	cache := newMockTokenCache()
	uc := NewSessionUsecase(&mockTokenExchanger{}, cache, testCreds, func() time.Duration { return 0 })

	if _, err := uc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.SetTTLs) != 0 {
		t.Errorf("expected no Set with a non-positive ttl, got %v", cache.SetTTLs)
	}
}

func TestSessionUsecase_Bootstrap_NewRequestTokenIgnoresOldCache(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{}
	cache := newMockTokenCache()
	cache.tokens["key:yesterday"] = "stale"
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("expected a fresh exchange, got %q", token)
	}
	if exchanger.Calls != 1 {
		t.Errorf("expected 1 exchange, got %d", exchanger.Calls)
	}
}

func TestSessionUsecase_Invalidate(t *testing.T) {
	t.Parallel()

	exchanger := &mockTokenExchanger{}
	cache := newMockTokenCache()
	cache.tokens[testCacheKey] = "stale"
	uc := NewSessionUsecase(exchanger, cache, testCreds, fixedTTL)

	uc.Invalidate(context.Background())

	if len(cache.Deleted) != 1 || cache.Deleted[0] != testCacheKey {
		t.Fatalf("expected eviction of %q, got %v", testCacheKey, cache.Deleted)
	}

	// The next bootstrap exchanges again instead of reusing the rejected token.
	token, err := uc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "fresh-token" || exchanger.Calls != 1 {
		t.Errorf("expected one fresh exchange, got token %q after %d calls", token, exchanger.Calls)
	}
}

func TestSessionUsecase_Invalidate_Tolerant(t *testing.T) {
	t.Parallel()

	// No cache configured.
	NewSessionUsecase(&mockTokenExchanger{}, nil, testCreds, fixedTTL).Invalidate(context.Background())

	cache := newMockTokenCache()
	cache.DeleteErr = errors.New("connection refused")
	NewSessionUsecase(&mockTokenExchanger{}, cache, testCreds, fixedTTL).Invalidate(context.Background())

	if len(cache.Deleted) != 1 {
		t.Errorf("expected one eviction attempt, got %v", cache.Deleted)
	}
}
