package pipeline

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

// AuthTransport attaches the stored bearer credential to every request.
// An expired credential is never sent: it is cleared, the request is
// aborted with ErrSessionExpired and the re-authentication hook fires.
// Any unauthorized response clears the credential the same way, no matter
// which endpoint produced it.
type AuthTransport struct {
	next     http.RoundTripper
	tokens   *token.Store
	onReject func()
}

// NewAuthTransport wraps next. onReject is invoked whenever the stored
// credential turns out to be unusable; it may be nil.
func NewAuthTransport(next http.RoundTripper, tokens *token.Store, onReject func()) *AuthTransport {
	return &AuthTransport{next: next, tokens: tokens, onReject: onReject}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	raw, ok := t.tokens.Load()
	if ok {
		if token.IsExpired(raw) {
			log.Info().Msg("refusing to send expired credential")
			t.reject()

			return nil, ErrSessionExpired
		}

		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+raw)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Info().Str("url", req.URL.String()).Msg("request rejected, forcing re-authentication")
		t.reject()
	}

	return resp, nil
}

func (t *AuthTransport) reject() {
	if err := t.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing rejected credential")
	}

	if t.onReject != nil {
		t.onReject()
	}
}
