package pipeline

import (
	"net/http"
	"time"

	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

// NewTransport builds the decorator chain around base. The trace stage
// sees each request before the auth stage does.
func NewTransport(base http.RoundTripper, tokens *token.Store, store storage.Storage, onReject func()) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	return NewTraceTransport(NewAuthTransport(base, tokens, onReject), store)
}

// NewClient returns an http.Client using the full decorator chain.
func NewClient(tokens *token.Store, store storage.Storage, onReject func(), timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(nil, tokens, store, onReject),
		Timeout:   timeout,
	}
}
