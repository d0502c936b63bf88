package pipeline

import "errors"

var (
	// ErrSessionExpired aborts a request whose stored credential has
	// expired. The credential is already cleared when this is returned.
	ErrSessionExpired = errors.New("session expired, sign in again")
)
