package auth

import "errors"

var (
	// ErrNoToken is returned by the TokenStore when no token has been saved.
	ErrNoToken = errors.New("no token available")

	// ErrUnauthenticated covers missing, malformed, or expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden covers valid tokens that lack a required scope.
	ErrForbidden = errors.New("forbidden")
)
