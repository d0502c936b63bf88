package session

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/ik-mouad/iorecycling-sub000/internal/navigation"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

// State tracks where the login flow currently stands.
type State int

const (
	StateUnauthenticated State = iota
	StateCodeReceived
	StateExchanging
	StateAuthenticated
	StateExchangeFailed
	StateLoggedOut
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateCodeReceived:
		return "code_received"
	case StateExchanging:
		return "exchanging"
	case StateAuthenticated:
		return "authenticated"
	case StateExchangeFailed:
		return "exchange_failed"
	case StateLoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// Navigator is the location the orchestrator reads and redirects.
// navigation.Recorder satisfies it.
type Navigator interface {
	Current() *url.URL
	Navigate(target string)
	ReplaceLocation(target string)
}

// Config carries the provider coordinates for the authorization code flow.
type Config struct {
	Issuer        string
	ClientID      string
	RedirectURL   string
	PostLogoutURL string
	Scopes        []string
	Discovery     bool
}

// Orchestrator drives the authorization code flow: it sends the user to the
// provider, completes the code exchange on return, keeps the credential
// store in sync and lands the user on the page their roles call for.
type Orchestrator struct {
	cfg      Config
	eps      endpoints
	oauth    oauth2.Config
	tokens   *token.Store
	claims   *token.Reader
	nav      Navigator
	client   *http.Client
	exchange func(ctx context.Context, code string) (*oauth2.Token, error)

	mu       sync.Mutex
	state    State
	resumed  bool
	lastErr  *FlowError
	onChange []func(authenticated bool)
}

// Option adjusts orchestrator construction.
type Option func(*Orchestrator)

// WithHTTPClient routes all provider traffic through the given client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) { o.client = client }
}

// New wires an orchestrator against the configured provider. With
// cfg.Discovery set the endpoints come from the issuer's discovery
// document, otherwise they are derived from the issuer URL directly.
func New(ctx context.Context, cfg Config, tokens *token.Store, claims *token.Reader, nav Navigator, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		cfg:    cfg,
		tokens: tokens,
		claims: claims,
		nav:    nav,
		state:  StateUnauthenticated,
	}

	for _, opt := range opts {
		opt(o)
	}

	if cfg.Discovery {
		eps, err := discoverEndpoints(ctx, cfg.Issuer, cfg.ClientID, o.client)
		if err != nil {
			return nil, err
		}

		o.eps = eps
	} else {
		o.eps = staticEndpoints(cfg.Issuer)
	}

	o.oauth = oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURL,
		Scopes:      cfg.Scopes,
		Endpoint:    o.eps.Endpoint,
	}

	o.exchange = o.exchangeCode

	return o, nil
}

// State returns the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// LastError returns the most recent flow failure, if any.
func (o *Orchestrator) LastError() *FlowError {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastErr
}

// OnChange registers a callback invoked after every authentication state
// change with the new authenticated flag.
func (o *Orchestrator) OnChange(fn func(authenticated bool)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.onChange = append(o.onChange, fn)
}

// Login sends the user to the provider's authorization page. The state
// parameter stays empty to match the provider contract this client was
// registered under.
func (o *Orchestrator) Login() {
	target := o.oauth.AuthCodeURL("")

	log.Debug().Str("url", o.eps.AuthURL).Msg("redirecting to authorization endpoint")
	o.nav.Navigate(target)
}

// ResumeFromRedirect inspects the current location once and settles the
// session: a provider error ends the attempt, a code is exchanged for
// tokens, and with neither present any stored credential decides the
// outcome. Calling it a second time is a no-op.
func (o *Orchestrator) ResumeFromRedirect(ctx context.Context) error {
	o.mu.Lock()
	if o.resumed {
		o.mu.Unlock()

		return nil
	}

	o.resumed = true
	o.mu.Unlock()

	current := o.nav.Current()
	query := current.Query()

	if provErr := query.Get("error"); provErr != "" {
		o.stripQuery(current)

		flowErr := &FlowError{
			Kind:        KindProvider,
			Code:        provErr,
			Description: query.Get("error_description"),
		}

		o.fail(flowErr, StateUnauthenticated)

		return flowErr
	}

	if code := query.Get("code"); code != "" {
		return o.completeExchange(ctx, current, code)
	}

	return o.restoreStored()
}

// completeExchange trades the authorization code for tokens and lands the
// user. The code is removed from the location before the exchange so it
// can never be replayed from history.
func (o *Orchestrator) completeExchange(ctx context.Context, current *url.URL, code string) error {
	o.setState(StateCodeReceived)
	o.stripQuery(current)
	o.setState(StateExchanging)

	tok, err := o.exchange(ctx, code)
	if err != nil {
		flowErr := classify(err)
		log.Warn().Err(err).Str("code", flowErr.Code).Msg("code exchange failed")
		o.fail(flowErr, StateExchangeFailed)
		o.setState(StateUnauthenticated)

		return flowErr
	}

	cred := token.Credential{Raw: tok.AccessToken, Refresh: tok.RefreshToken}
	if err := o.tokens.Save(cred); err != nil {
		flowErr := &FlowError{Kind: KindConfig, cause: err}
		o.fail(flowErr, StateUnauthenticated)

		return flowErr
	}

	o.setState(StateAuthenticated)
	o.notify(true)
	log.Info().Msg("session established")
	o.RedirectPostLogin()

	return nil
}

// restoreStored settles the session from the credential store when the
// location carries neither code nor error. A stale credential is dropped.
func (o *Orchestrator) restoreStored() error {
	raw, ok := o.tokens.Load()
	if ok && !token.IsExpired(raw) {
		o.setState(StateAuthenticated)
		o.notify(true)
		o.RedirectPostLogin()

		return nil
	}

	if ok {
		if err := o.tokens.Clear(); err != nil {
			log.Warn().Err(err).Msg("clearing expired credential")
		}
	}

	o.setState(StateUnauthenticated)

	return nil
}

// RedirectPostLogin sends the user to the landing page their highest role
// selects. Already being inside an authenticated area keeps the current
// location, so a reload does not bounce the user around.
func (o *Orchestrator) RedirectPostLogin() {
	if navigation.IsAuthenticatedArea(o.nav.Current().Path) {
		return
	}

	o.nav.Navigate(navigation.LandingForRoles(o.Roles()))
}

// Logout clears both stored tokens first and only then redirects to the
// provider's logout endpoint, so no request can go out with a credential
// the user already revoked.
func (o *Orchestrator) Logout() {
	if err := o.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing credentials on logout")
	}

	o.setState(StateLoggedOut)
	o.notify(false)

	back := o.cfg.PostLogoutURL
	if back == "" {
		back = o.cfg.RedirectURL
	}

	o.nav.Navigate(o.eps.logoutURL + "?redirect_uri=" + url.QueryEscape(back))
}

// ForceReauth drops the stored credential and sends the user back to the
// entry route. The request pipeline calls this on an authorization
// rejection.
func (o *Orchestrator) ForceReauth() {
	if err := o.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing credentials for re-authentication")
	}

	o.setState(StateUnauthenticated)
	o.notify(false)
	o.nav.Navigate(navigation.EntryRoute)
}

// HasValidCredential reports whether a non-expired access token is stored.
func (o *Orchestrator) HasValidCredential() bool {
	raw, ok := o.tokens.Load()

	return ok && !token.IsExpired(raw)
}

// Roles returns the role claims of the stored credential, nil when there
// is none or it cannot be read.
func (o *Orchestrator) Roles() []string {
	raw, ok := o.tokens.Load()
	if !ok {
		return nil
	}

	return o.claims.RolesOf(raw)
}

func (o *Orchestrator) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if o.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.client)
	}

	tok, err := o.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	if o.eps.verifier != nil {
		if rawID, ok := tok.Extra("id_token").(string); ok {
			if _, err := o.eps.verifier.Verify(ctx, rawID); err != nil {
				return nil, err
			}
		}
	}

	return tok, nil
}

// stripQuery rewrites the location without its query string, replacing the
// current history entry rather than adding one.
func (o *Orchestrator) stripQuery(current *url.URL) {
	clean := *current
	clean.RawQuery = ""
	o.nav.ReplaceLocation(clean.String())
}

func (o *Orchestrator) setState(next State) {
	o.mu.Lock()
	prev := o.state
	o.state = next
	o.mu.Unlock()

	if prev != next {
		log.Debug().Stringer("from", prev).Stringer("to", next).Msg("session state change")
	}
}

func (o *Orchestrator) fail(flowErr *FlowError, next State) {
	o.mu.Lock()
	o.lastErr = flowErr
	o.mu.Unlock()

	o.setState(next)
	o.notify(false)
}

func (o *Orchestrator) notify(authenticated bool) {
	o.mu.Lock()
	callbacks := make([]func(bool), len(o.onChange))
	copy(callbacks, o.onChange)
	o.mu.Unlock()

	for _, fn := range callbacks {
		fn(authenticated)
	}
}
