package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
)

// Credential is the token pair returned by a successful code exchange.
type Credential struct {
	// Raw is the signed access token exactly as issued.
	Raw string

	// Refresh is the optional renewal token; may be empty.
	Refresh string
}

// Store persists the credential under fixed storage keys.
type Store struct {
	storage storage.Storage
}

// NewStore creates a credential store over the given storage.
func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Save writes the credential, overwriting any prior one. No validation
// happens at write time; Load and IsExpired decide usability.
func (s *Store) Save(cred Credential) error {
	if err := s.storage.Set(storage.KeyAccessToken, cred.Raw); err != nil {
		return err
	}

	if cred.Refresh == "" {
		return s.storage.Delete(storage.KeyRefreshToken)
	}

	return s.storage.Set(storage.KeyRefreshToken, cred.Refresh)
}

// Load returns the stored raw token. The second result is false when no
// credential is stored or the storage read failed; Load itself never fails.
func (s *Store) Load() (string, bool) {
	raw, err := s.storage.Get(storage.KeyAccessToken)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Warn().Err(err).Msg("credential read failed, treating as absent")
		}

		return "", false
	}

	return raw, raw != ""
}

// LoadRefresh returns the stored renewal token, if any.
func (s *Store) LoadRefresh() (string, bool) {
	raw, err := s.storage.Get(storage.KeyRefreshToken)
	if err != nil || raw == "" {
		return "", false
	}

	return raw, true
}

// Clear removes both persisted tokens. Idempotent.
func (s *Store) Clear() error {
	if err := s.storage.Delete(storage.KeyAccessToken); err != nil {
		return err
	}

	return s.storage.Delete(storage.KeyRefreshToken)
}

// IsExpired reports whether the token's embedded expiry lies in the past.
// Any decode failure counts as expired: a token we cannot read is a token
// we must not use.
func IsExpired(raw string) bool {
	payload, err := decodePayload(raw)
	if err != nil {
		return true
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}

	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return true
	}

	return time.Now().After(time.Unix(claims.Exp, 0))
}

// decodePayload extracts and decodes the payload segment of a signed token.
func decodePayload(raw string) ([]byte, error) {
	if raw == "" {
		return nil, ErrNoCredential
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedCredential
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedCredential
	}

	return payload, nil
}
