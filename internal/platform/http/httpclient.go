package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client tuned for calling external APIs.
//
// Settings:
//   - Proxy: taken from the environment (HTTP_PROXY and friends)
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - Dialer.KeepAlive: how long reusable TCP connections are kept alive
//   - MaxIdleConns: 100 idle connections at most
//   - IdleConnTimeout: how long an idle connection is kept
//   - TLSHandshakeTimeout: upper bound for the HTTPS handshake
//   - Client.Timeout: overall request timeout, supplied by the caller
//
// http.DefaultClient has no timeout, so always use a client from here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
