package policy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// State is the enforcer lifecycle state.
type State int32

// Lifecycle states. Ready and Failed are terminal.
const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Rule is one declarative grant: role may perform action on resource.
type Rule struct {
	Role     string `validate:"required"`
	Resource string `validate:"required"`
	Action   string `validate:"required"`
}

// Group lets Role inherit every grant of the included roles. There is no
// implicit inheritance; only these explicit rules connect roles.
type Group struct {
	Role     string   `validate:"required"`
	Includes []string `validate:"required,min=1,dive,required"`
}

// Grammar declares the resource and action vocabulary rules may use.
type Grammar struct {
	Resources []string
	Actions   []string
}

// Table is the immutable rule table loaded once at process start.
type Table struct {
	Rules  []Rule  `validate:"dive"`
	Groups []Group `validate:"dive"`
}

// TableFunc loads the rule table. It runs at most once per process.
type TableFunc func(ctx context.Context) (Table, error)

type cachedDecision struct {
	allowed bool
	expires time.Time
}

// Enforcer answers "may subject with these roles do action on resource".
type Enforcer struct {
	mu       sync.Mutex
	state    State
	done     chan struct{}
	initErr  error
	grants   map[string]struct{}
	expand   map[string][]string
	fallback map[string][]string

	cacheTTL  time.Duration
	cacheMu   sync.Mutex
	cache     map[string]cachedDecision
	cacheSubj string

	now func() time.Time
}

// Option configures an Enforcer.
type Option func(*Enforcer)

// WithCacheTTL enables the short-lived decision cache. The cache is keyed
// by (resource, action) for the current subject and wiped wholesale when
// the subject's roles change.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Enforcer) { e.cacheTTL = ttl }
}

// WithClock overrides the time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(e *Enforcer) { e.now = now }
}

// New creates an enforcer with the given pre-initialization fallback map
// (resource → allowed roles). A nil map means deny-everything until Ready.
func New(fallback map[string][]string, opts ...Option) *Enforcer {
	e := &Enforcer{
		state:    StateUninitialized,
		fallback: fallback,
		cache:    make(map[string]cachedDecision),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the current lifecycle state.
func (e *Enforcer) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Initialize loads and parses the rule table. Safe to call any number of
// times: the first call performs the parse, concurrent callers wait for it,
// later callers observe the settled Ready/Failed outcome. There is no way
// back from either terminal state.
func (e *Enforcer) Initialize(ctx context.Context, grammar Grammar, load TableFunc) error {
	if load == nil {
		return ErrNotInitialized
	}

	e.mu.Lock()

	switch e.state {
	case StateReady, StateFailed:
		err := e.initErr
		e.mu.Unlock()

		return err
	case StateInitializing:
		done := e.done
		e.mu.Unlock()

		select {
		case <-done:
			return e.settledErr()
		case <-ctx.Done():
			return ctx.Err()
		}
	case StateUninitialized:
		e.state = StateInitializing
		e.done = make(chan struct{})
		e.mu.Unlock()
	}

	table, err := load(ctx)

	var (
		grants map[string]struct{}
		expand map[string][]string
	)

	if err == nil {
		grants, expand, err = compile(grammar, table)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.state = StateFailed
		e.initErr = err

		log.Error().Err(err).Msg("policy table rejected, denying all checks")
	} else {
		e.state = StateReady
		e.grants = grants
		e.expand = expand

		log.Info().Int("rules", len(table.Rules)).Int("groups", len(table.Groups)).
			Msg("policy table loaded")
	}

	close(e.done)

	return e.initErr
}

func (e *Enforcer) settledErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.initErr
}

// Can reports whether any of the subject's roles grants (resource, action).
// Before initialization settles it answers from the fallback map; after a
// failed initialization it denies everything.
func (e *Enforcer) Can(subjectRoles []string, resource, action string) bool {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	switch state {
	case StateReady:
		return e.evaluate(subjectRoles, resource, action)
	case StateFailed:
		return false
	default:
		return e.fallbackAllows(subjectRoles, resource)
	}
}

// fallbackAllows consults the fixed resource → allowed-roles map. The map
// is not derived from the rule table and ignores the action.
func (e *Enforcer) fallbackAllows(subjectRoles []string, resource string) bool {
	allowed, ok := e.fallback[resource]
	if !ok {
		return false
	}

	for _, role := range subjectRoles {
		for _, a := range allowed {
			if role == a {
				return true
			}
		}
	}

	return false
}

func (e *Enforcer) evaluate(subjectRoles []string, resource, action string) bool {
	subj := subjectKey(subjectRoles)
	key := resource + "\x00" + action

	if e.cacheTTL > 0 {
		if allowed, ok := e.cachedFor(subj, key); ok {
			return allowed
		}
	}

	allowed := false

	for _, role := range subjectRoles {
		for _, effective := range e.effectiveRoles(role) {
			if _, ok := e.grants[grantKey(effective, resource, action)]; ok {
				allowed = true
				break
			}
		}

		if allowed {
			break
		}
	}

	if e.cacheTTL > 0 {
		e.remember(subj, key, allowed)
	}

	return allowed
}

// effectiveRoles returns the role itself plus everything reachable through
// explicit grouping rules.
func (e *Enforcer) effectiveRoles(role string) []string {
	expanded, ok := e.expand[role]
	if !ok {
		return []string{role}
	}

	return expanded
}

// cachedFor returns a live cached decision. A subject change wipes the
// cache wholesale before lookup.
func (e *Enforcer) cachedFor(subj, key string) (bool, bool) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if e.cacheSubj != subj {
		e.cache = make(map[string]cachedDecision)
		e.cacheSubj = subj

		return false, false
	}

	d, ok := e.cache[key]
	if !ok || e.now().After(d.expires) {
		return false, false
	}

	return d.allowed, true
}

func (e *Enforcer) remember(subj, key string, allowed bool) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if e.cacheSubj != subj {
		return
	}

	e.cache[key] = cachedDecision{allowed: allowed, expires: e.now().Add(e.cacheTTL)}
}

// InvalidateCache drops every cached decision. Call on any role change,
// e.g. after re-authentication.
func (e *Enforcer) InvalidateCache() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	e.cache = make(map[string]cachedDecision)
	e.cacheSubj = ""
}

func grantKey(role, resource, action string) string {
	return role + "\x00" + resource + "\x00" + action
}

func subjectKey(roles []string) string {
	sorted := append([]string(nil), roles...)
	sort.Strings(sorted)

	return strings.Join(sorted, ",")
}

// compile validates the table against the grammar and builds the grant set
// and the explicit group closure.
func compile(grammar Grammar, table Table) (map[string]struct{}, map[string][]string, error) {
	if len(grammar.Resources) == 0 || len(grammar.Actions) == 0 {
		return nil, nil, ErrGrammarEmpty
	}

	if err := validator.New().Struct(table); err != nil {
		return nil, nil, fmt.Errorf("malformed rule table: %w", err)
	}

	resources := toSet(grammar.Resources)
	actions := toSet(grammar.Actions)

	grants := make(map[string]struct{}, len(table.Rules))

	for _, r := range table.Rules {
		if _, ok := resources[r.Resource]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownResource, r.Resource)
		}

		if _, ok := actions[r.Action]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Action)
		}

		grants[grantKey(r.Role, r.Resource, r.Action)] = struct{}{}
	}

	includes := make(map[string][]string, len(table.Groups))
	for _, g := range table.Groups {
		includes[g.Role] = append(includes[g.Role], g.Includes...)
	}

	expand := make(map[string][]string, len(includes))
	for role := range includes {
		expand[role] = closure(role, includes)
	}

	return grants, expand, nil
}

// closure walks the grouping graph from role; cycles terminate through the
// visited set.
func closure(role string, includes map[string][]string) []string {
	visited := map[string]struct{}{}
	order := []string{}
	stack := []string{role}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[r]; seen {
			continue
		}

		visited[r] = struct{}{}
		order = append(order, r)
		stack = append(stack, includes[r]...)
	}

	return order
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}
