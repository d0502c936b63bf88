package pipeline

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
)

// Correlation headers on outbound requests.
const (
	HeaderRequestID   = "x-request-id"
	HeaderTraceParent = "traceparent"
)

// TraceTransport stamps each request with a fresh request id (unless the
// caller already set one) and the last persisted trace parent. A response
// carrying a trace parent overwrites the persisted value.
type TraceTransport struct {
	next  http.RoundTripper
	store storage.Storage
}

func NewTraceTransport(next http.RoundTripper, store storage.Storage) *TraceTransport {
	return &TraceTransport{next: next, store: store}
}

func (t *TraceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	if parent, err := t.store.Get(storage.KeyTraceParent); err == nil && parent != "" {
		req.Header.Set(HeaderTraceParent, parent)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if parent := resp.Header.Get(HeaderTraceParent); parent != "" {
		if err := t.store.Set(storage.KeyTraceParent, parent); err != nil {
			log.Warn().Err(err).Msg("persisting trace parent")
		}
	}

	return resp, nil
}
