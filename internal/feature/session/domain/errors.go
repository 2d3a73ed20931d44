// Package domain defines domain-level errors for the session feature.
package domain

import "errors"

// ErrAuth indicates the request token was rejected by the brokerage (invalid or
// expired). It aborts the run before anything is written.
var ErrAuth = errors.New("session exchange rejected")
