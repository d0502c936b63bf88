package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
)

func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()

	db, err := storage.Open(":memory:")
	require.NoError(t, err)

	return map[string]storage.Storage{
		"sqlite": db,
		"memory": storage.NewMemory(),
	}
}

func TestStorageRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(storage.KeyAccessToken)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, s.Set(storage.KeyAccessToken, "tok-1"))

			v, err := s.Get(storage.KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, "tok-1", v)

			// overwrite, never merge
			require.NoError(t, s.Set(storage.KeyAccessToken, "tok-2"))

			v, err = s.Get(storage.KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, "tok-2", v)
		})
	}
}

func TestStorageDeleteIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(storage.KeyLanguage, "fr"))
			require.NoError(t, s.Delete(storage.KeyLanguage))

			_, err := s.Get(storage.KeyLanguage)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			// deleting again is not an error
			assert.NoError(t, s.Delete(storage.KeyLanguage))
		})
	}
}

func TestStorageKeysAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(storage.KeyAccessToken, "a"))
			require.NoError(t, s.Set(storage.KeyTraceParent, "b"))

			require.NoError(t, s.Delete(storage.KeyAccessToken))

			v, err := s.Get(storage.KeyTraceParent)
			require.NoError(t, err)
			assert.Equal(t, "b", v)
		})
	}
}
