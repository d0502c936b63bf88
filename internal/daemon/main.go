// Package daemon wires the subsystems into one application container the
// commands run against.
package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ik-mouad/iorecycling-sub000/internal/api"
	"github.com/ik-mouad/iorecycling-sub000/internal/config"
	"github.com/ik-mouad/iorecycling-sub000/internal/guard"
	"github.com/ik-mouad/iorecycling-sub000/internal/navigation"
	"github.com/ik-mouad/iorecycling-sub000/internal/pipeline"
	"github.com/ik-mouad/iorecycling-sub000/internal/policy"
	"github.com/ik-mouad/iorecycling-sub000/internal/session"
	"github.com/ik-mouad/iorecycling-sub000/internal/storage"
	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

// Daemon holds the wired subsystems for one process run.
type Daemon struct {
	Cfg      *config.Config
	Store    storage.Storage
	Tokens   *token.Store
	Claims   *token.Reader
	Nav      *navigation.Recorder
	Session  *session.Orchestrator
	Enforcer *policy.Enforcer
	Guard    *guard.Guard
	API      *api.Client
}

// New wires all subsystems from the configuration. The policy table is
// compiled here, once, before any command runs.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	tokens := token.NewStore(db)

	var readerOpts []token.ReaderOption
	if cfg.DevMode && cfg.Auth.DevFallback {
		log.Warn().Msg("dev fallback claims enabled")
		readerOpts = append(readerOpts, token.WithDevFallback(cfg.Auth.DevFallbackRoles))
	}

	claims := token.NewReader(readerOpts...)

	nav := navigation.NewRecorder(navigation.EntryRoute)

	sess, err := session.New(ctx, session.Config{
		Issuer:      cfg.Auth.Issuer,
		ClientID:    cfg.Auth.ClientID,
		RedirectURL: cfg.Auth.RedirectURL,
		Scopes:      cfg.Auth.Scopes,
		Discovery:   cfg.Auth.Discovery,
	}, tokens, claims, nav)
	if err != nil {
		return nil, err
	}

	enforcer := policy.New(policy.DefaultFallback(), policy.WithCacheTTL(cfg.Policy.CacheTTL))

	grammar := policy.Grammar{Resources: cfg.Policy.Resources, Actions: cfg.Policy.Actions}
	if err := enforcer.Initialize(ctx, grammar, tableFromConfig(&cfg.Policy)); err != nil {
		return nil, err
	}

	timeout := cfg.API.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := pipeline.NewClient(tokens, db, sess.ForceReauth, timeout)

	apiClient, err := api.New(cfg.API.BaseURL, httpClient)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		Cfg:      cfg,
		Store:    db,
		Tokens:   tokens,
		Claims:   claims,
		Nav:      nav,
		Session:  sess,
		Enforcer: enforcer,
		Guard:    guard.New(sess, enforcer),
		API:      apiClient,
	}, nil
}

// tableFromConfig adapts the configured rule table to the enforcer's
// loader contract.
func tableFromConfig(cfg *config.Policy) policy.TableFunc {
	return func(context.Context) (policy.Table, error) {
		table := policy.Table{
			Rules:  make([]policy.Rule, 0, len(cfg.Rules)),
			Groups: make([]policy.Group, 0, len(cfg.Groups)),
		}

		for _, r := range cfg.Rules {
			table.Rules = append(table.Rules, policy.Rule{Role: r.Role, Resource: r.Resource, Action: r.Action})
		}

		for _, g := range cfg.Groups {
			table.Groups = append(table.Groups, policy.Group{Role: g.Role, Includes: g.Includes})
		}

		return table, nil
	}
}
