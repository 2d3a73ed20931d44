package usecase

import "errors"

// ErrTokenNotCached is returned by a TokenCache when no token is stored for the key.
var ErrTokenNotCached = errors.New("access token not cached")
