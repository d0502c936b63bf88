// Package storage persists the handful of scalar strings the client keeps
// across runs: the credentials, the last-seen trace parent id and the
// selected UI language. Each value lives under a fixed key name.
//
// There is exactly one writer (the current process); no locking beyond what
// the backend provides is needed.
package storage

import "errors"

// Fixed key names for the persisted values.
const (
	// KeyAccessToken holds the primary credential (raw signed token).
	KeyAccessToken = "access_token"

	// KeyRefreshToken holds the optional renewal token.
	KeyRefreshToken = "refresh_token"

	// KeyTraceParent holds the last trace parent id seen on a response.
	KeyTraceParent = "trace_parent"

	// KeyLanguage holds the selected UI language.
	KeyLanguage = "ui_language"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a persisted scalar-string key/value store.
type Storage interface {
	// Get returns the stored value or ErrNotFound.
	Get(key string) (string, error)

	// Set writes the value, overwriting any prior one.
	Set(key, value string) error

	// Delete removes the value; deleting an absent key is not an error.
	Delete(key string) error
}
