package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik-mouad/iorecycling-sub000/internal/session"
	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

func TestNewWithDiscovery(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/protocol/openid-connect/auth",
			"token_endpoint":         srv.URL + "/protocol/openid-connect/token",
			"end_session_endpoint":   srv.URL + "/protocol/openid-connect/logout",
			"jwks_uri":               srv.URL + "/protocol/openid-connect/certs",
		})
	})

	store := token.NewStore(storage.NewMemory())
	nav := &recordingNavigator{}

	o, err := session.New(context.Background(), session.Config{
		Issuer:      srv.URL,
		ClientID:    "iorecycling-client",
		RedirectURL: callbackURL,
		Scopes:      []string{"openid"},
		Discovery:   true,
	}, store, token.NewReader(), nav)
	require.NoError(t, err)

	o.Login()
	assert.Contains(t, nav.lastTarget, srv.URL+"/protocol/openid-connect/auth")
}

func TestNewWithDiscoveryUnreachable(t *testing.T) {
	store := token.NewStore(storage.NewMemory())

	_, err := session.New(context.Background(), session.Config{
		Issuer:      "http://127.0.0.1:1",
		ClientID:    "iorecycling-client",
		RedirectURL: callbackURL,
		Scopes:      []string{"openid"},
		Discovery:   true,
	}, store, token.NewReader(), &recordingNavigator{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider discovery")
}

// recordingNavigator is the minimal Navigator for tests that only care
// about the last navigation target.
type recordingNavigator struct {
	lastTarget string
}

func (n *recordingNavigator) Current() *url.URL       { return &url.URL{Path: "/"} }
func (n *recordingNavigator) Navigate(target string)  { n.lastTarget = target }
func (n *recordingNavigator) ReplaceLocation(string)  {}
