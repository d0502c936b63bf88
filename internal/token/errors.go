package token

import "errors"

var (
	// ErrNoCredential is returned when no token is stored or provided.
	ErrNoCredential = errors.New("no credential present")

	// ErrMalformedCredential is returned when the token payload cannot be
	// decoded or misses a required claim. Callers must treat this exactly
	// like an absent credential.
	ErrMalformedCredential = errors.New("malformed credential")
)
