package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Keycloak realm endpoint paths, used when discovery is disabled.
const (
	pathAuthorize = "/protocol/openid-connect/auth"
	pathToken     = "/protocol/openid-connect/token"
	pathLogout    = "/protocol/openid-connect/logout"
)

// endpoints holds the resolved provider URLs plus an optional ID token
// verifier when they came from the discovery document.
type endpoints struct {
	oauth2.Endpoint

	logoutURL string
	verifier  *oidc.IDTokenVerifier
}

// staticEndpoints derives the realm endpoints from the issuer URL alone.
func staticEndpoints(issuer string) endpoints {
	base := strings.TrimRight(issuer, "/")

	return endpoints{
		Endpoint: oauth2.Endpoint{
			AuthURL:  base + pathAuthorize,
			TokenURL: base + pathToken,
		},
		logoutURL: base + pathLogout,
	}
}

// discoverEndpoints fetches the issuer's discovery document and returns the
// advertised endpoints together with a verifier for returned ID tokens.
func discoverEndpoints(ctx context.Context, issuer, clientID string, client *http.Client) (endpoints, error) {
	if client != nil {
		ctx = oidc.ClientContext(ctx, client)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return endpoints{}, errors.Wrap(err, "provider discovery")
	}

	var extra struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}

	if err := provider.Claims(&extra); err != nil {
		return endpoints{}, errors.Wrap(err, "provider discovery claims")
	}

	resolved := endpoints{
		Endpoint:  provider.Endpoint(),
		logoutURL: extra.EndSessionEndpoint,
		verifier:  provider.Verifier(&oidc.Config{ClientID: clientID}),
	}

	if resolved.logoutURL == "" {
		resolved.logoutURL = strings.TrimRight(issuer, "/") + pathLogout
	}

	return resolved, nil
}
