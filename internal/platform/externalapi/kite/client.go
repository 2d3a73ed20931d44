package kite

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	sessiondomain "stock_fetcher/internal/feature/session/domain"
)

// APIError is a failure reported by the Kite Connect API.
type APIError struct {
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("kite http %d: %s: %s", e.StatusCode, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("kite http %d: %s", e.StatusCode, e.Message)
}

// Client wraps the Kite Connect SDK client. It is not safe to change the
// access token while requests are in flight.
type Client struct {
	cfg Config
	kc  *kiteconnect.Client
}

// NewClient creates a Client with the given configuration and HTTP client.
// A nil httpClient keeps the SDK default.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	kc := kiteconnect.New(cfg.APIKey)
	if cfg.BaseURL != "" {
		kc.SetBaseURI(strings.TrimRight(cfg.BaseURL, "/"))
	}
	if httpClient != nil {
		kc.SetHTTPClient(httpClient)
	}
	return &Client{cfg: cfg, kc: kc}
}

// SetAccessToken sets the token used to authorize data requests.
func (c *Client) SetAccessToken(token string) {
	c.kc.SetAccessToken(token)
}

// asSDKError extracts the SDK error, which is returned by value.
func asSDKError(err error) (kiteconnect.Error, bool) {
	var kerr kiteconnect.Error
	if errors.As(err, &kerr) {
		return kerr, true
	}
	var pkerr *kiteconnect.Error
	if errors.As(err, &pkerr) && pkerr != nil {
		return *pkerr, true
	}
	return kiteconnect.Error{}, false
}

// wrapError converts an SDK error into an *APIError. A rejected or expired
// access token is additionally marked with sessiondomain.ErrAuth.
func wrapError(err error) error {
	kerr, ok := asSDKError(err)
	if !ok {
		return err
	}
	apiErr := &APIError{StatusCode: kerr.Code, ErrorType: kerr.ErrorType, Message: kerr.Message}
	if kerr.ErrorType == kiteconnect.TokenError {
		return fmt.Errorf("%w: %w", sessiondomain.ErrAuth, apiErr)
	}
	return apiErr
}
