package token

import "encoding/json"

// Claims is the typed, validated token payload. It is only ever produced by
// a Reader; a partially decoded payload is rejected rather than returned.
type Claims struct {
	Subject           string   `json:"sub"`
	Expiry            int64    `json:"exp"`
	Name              string   `json:"name"`
	GivenName         string   `json:"given_name"`
	FamilyName        string   `json:"family_name"`
	Email             string   `json:"email"`
	PreferredUsername string   `json:"preferred_username"`
	Roles             []string `json:"roles"`
	SocietyID         string   `json:"society_id"`

	// Fallback marks fabricated development claims. Never set on claims
	// decoded from a real credential.
	Fallback bool `json:"-"`
}

// Reader decodes credential claims without a network call.
type Reader struct {
	devFallback   bool
	fallbackRoles []string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithDevFallback makes ClaimsOf return fabricated, marked claims instead
// of an error when no credential is present or decoding fails. Development
// convenience only; gate it behind dev mode in configuration.
func WithDevFallback(roles []string) ReaderOption {
	return func(r *Reader) {
		r.devFallback = true
		r.fallbackRoles = append([]string(nil), roles...)
	}
}

// NewReader creates a claims reader.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ClaimsOf decodes and returns the structured payload. A missing or
// undecodable token, or one without the required subject and expiry claims,
// yields ErrNoCredential/ErrMalformedCredential — or the marked fallback
// claims when the dev fallback is enabled.
func (r *Reader) ClaimsOf(raw string) (Claims, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return r.fallbackOr(err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return r.fallbackOr(ErrMalformedCredential)
	}

	// required claims; reject rather than return a partial object
	if claims.Subject == "" || claims.Expiry == 0 {
		return r.fallbackOr(ErrMalformedCredential)
	}

	return claims, nil
}

// RolesOf returns the credential's role list, empty on any failure.
func (r *Reader) RolesOf(raw string) []string {
	claims, err := r.ClaimsOf(raw)
	if err != nil {
		return nil
	}

	return claims.Roles
}

func (r *Reader) fallbackOr(err error) (Claims, error) {
	if !r.devFallback {
		return Claims{}, err
	}

	return Claims{
		Subject:           "dev-user",
		Name:              "Development User",
		PreferredUsername: "dev",
		Roles:             append([]string(nil), r.fallbackRoles...),
		Fallback:          true,
	}, nil
}
