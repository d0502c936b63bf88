package config

import (
	"errors"
)

var (
	// ErrScopesEmpty error if config auth.scopes resolves to an empty list.
	ErrScopesEmpty = errors.New("toml config auth.scopes can not be empty")

	// ErrDevFallbackOutsideDevMode error if the claims dev fallback is
	// enabled without devMode. The fallback fabricates an authenticated
	// looking identity and must never be active in a real build.
	ErrDevFallbackOutsideDevMode = errors.New("toml config auth.devFallback requires devMode")
)
