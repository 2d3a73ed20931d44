package kite

import (
	"context"
	"errors"

	sessionusecase "stock_fetcher/internal/feature/session/usecase"
)

var _ sessionusecase.TokenExchanger = (*Client)(nil)

// GenerateSession exchanges a request token for an access token.
func (c *Client) GenerateSession(ctx context.Context, requestToken, apiSecret string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sess, err := c.kc.GenerateSession(requestToken, apiSecret)
	if err != nil {
		return "", wrapError(err)
	}
	if sess.AccessToken == "" {
		return "", errors.New("kite: session response has no access token")
	}
	return sess.AccessToken, nil
}

// LoginURL returns the page where a user logs in to obtain a request token.
func (c *Client) LoginURL() string {
	return c.kc.GetLoginURL()
}
