package app

import "errors"

var (
	errNoSession = errors.New("not signed in, run \"iorecycling login\" first")
)
