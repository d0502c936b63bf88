package pipeline_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik-mouad/iorecycling-sub000/internal/pipeline"
	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func bearerToken(t *testing.T, exp time.Time) string {
	t.Helper()

	payload, err := json.Marshal(map[string]any{"sub": "u1", "exp": exp.Unix()})
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256"}`))

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
}

func TestAuthAttachesBearer(t *testing.T) {
	store := token.NewStore(storage.NewMemory())
	raw := bearerToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(token.Credential{Raw: raw}))

	var sent *http.Request

	transport := pipeline.NewAuthTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		sent = req

		return okResponse(), nil
	}), store, nil)

	req := httptest.NewRequest(http.MethodGet, "http://api.local/societies", nil)
	_, err := transport.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer "+raw, sent.Header.Get("Authorization"))

	// The original request must stay untouched.
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAuthSkipsHeaderWithoutCredential(t *testing.T) {
	store := token.NewStore(storage.NewMemory())

	transport := pipeline.NewAuthTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))

		return okResponse(), nil
	}), store, nil)

	_, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.NoError(t, err)
}

func TestAuthRefusesExpiredCredential(t *testing.T) {
	store := token.NewStore(storage.NewMemory())
	require.NoError(t, store.Save(token.Credential{Raw: bearerToken(t, time.Now().Add(-time.Minute))}))

	var nextCalled, rejected bool

	transport := pipeline.NewAuthTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
		nextCalled = true

		return okResponse(), nil
	}), store, func() { rejected = true })

	_, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.ErrorIs(t, err, pipeline.ErrSessionExpired)

	assert.False(t, nextCalled)
	assert.True(t, rejected)

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestAuthClearsOnUnauthorized(t *testing.T) {
	store := token.NewStore(storage.NewMemory())
	require.NoError(t, store.Save(token.Credential{Raw: bearerToken(t, time.Now().Add(time.Hour))}))

	var rejected bool

	transport := pipeline.NewAuthTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusUnauthorized, Header: http.Header{}}, nil
	}), store, func() { rejected = true })

	resp, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, rejected)

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestTraceGeneratesRequestID(t *testing.T) {
	mem := storage.NewMemory()

	transport := pipeline.NewTraceTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		id := req.Header.Get(pipeline.HeaderRequestID)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)

		return okResponse(), nil
	}), mem)

	_, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.NoError(t, err)
}

func TestTraceKeepsCallerRequestID(t *testing.T) {
	mem := storage.NewMemory()

	transport := pipeline.NewTraceTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "fixed-id", req.Header.Get(pipeline.HeaderRequestID))

		return okResponse(), nil
	}), mem)

	req := httptest.NewRequest(http.MethodGet, "http://api.local/", nil)
	req.Header.Set(pipeline.HeaderRequestID, "fixed-id")

	_, err := transport.RoundTrip(req)
	require.NoError(t, err)
}

func TestTracePropagatesParent(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(storage.KeyTraceParent, "00-aaa-bbb-01"))

	transport := pipeline.NewTraceTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "00-aaa-bbb-01", req.Header.Get(pipeline.HeaderTraceParent))

		resp := okResponse()
		resp.Header.Set(pipeline.HeaderTraceParent, "00-ccc-ddd-01")

		return resp, nil
	}), mem)

	_, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.NoError(t, err)

	// The response value replaces the persisted one wholesale.
	parent, err := mem.Get(storage.KeyTraceParent)
	require.NoError(t, err)
	assert.Equal(t, "00-ccc-ddd-01", parent)
}

func TestTraceOmitsParentWhenAbsent(t *testing.T) {
	mem := storage.NewMemory()

	transport := pipeline.NewTraceTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get(pipeline.HeaderTraceParent))

		return okResponse(), nil
	}), mem)

	_, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.local/", nil))
	require.NoError(t, err)
}

func TestFullChainAgainstServer(t *testing.T) {
	mem := storage.NewMemory()
	store := token.NewStore(mem)
	raw := bearerToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(token.Credential{Raw: raw}))
	require.NoError(t, mem.Set(storage.KeyTraceParent, "00-aaa-bbb-01"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+raw, r.Header.Get("Authorization"))
		assert.Equal(t, "00-aaa-bbb-01", r.Header.Get("Traceparent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set(pipeline.HeaderTraceParent, "00-eee-fff-01")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := pipeline.NewClient(store, mem, nil, 5*time.Second)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	parent, err := mem.Get(storage.KeyTraceParent)
	require.NoError(t, err)
	assert.Equal(t, "00-eee-fff-01", parent)
}
