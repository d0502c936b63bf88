package config

import (
	"time"

	"github.com/ik-mouad/iorecycling-sub000/internal/logger"
)

// Auth holds the identity provider settings.
type Auth struct {
	// Issuer is the identity provider base URL. The protocol endpoints
	// (authorize, token, logout) hang off this under the fixed
	// protocol/openid-connect paths.
	Issuer string `mapstructure:"issuer" validate:"required,url"`

	// ClientID is the public client identifier registered at the provider.
	ClientID string `mapstructure:"clientId" validate:"required"`

	// RedirectURL must match the redirect URI registered at the provider
	// exactly; the provider validates it on both the authorize and token
	// calls.
	RedirectURL string `mapstructure:"redirectUrl" validate:"required,url"`

	// Scopes requested on login (default: openid, profile, email).
	Scopes []string `mapstructure:"scopes"`

	// Discovery resolves the provider endpoints through OIDC discovery
	// instead of the fixed protocol paths.
	Discovery bool `mapstructure:"discovery"`

	// DevFallback enables fabricated claims when no credential is present.
	// Development convenience only; must never be enabled in a real build.
	DevFallback bool `mapstructure:"devFallback"`

	// DevFallbackRoles are the roles the fabricated claims carry.
	DevFallbackRoles []string `mapstructure:"devFallbackRoles"`
}

// Storage holds settings for the persisted key/value store.
type Storage struct {
	// Path is the SQLite database file backing persisted state
	// (credentials, trace parent id, UI language).
	Path string `mapstructure:"path" validate:"required"`
}

// API holds settings for the catalogue backend client.
type API struct {
	BaseURL string        `mapstructure:"baseUrl" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Callback holds settings for the loopback redirect listener.
type Callback struct {
	// Addr the listener binds to; must agree with Auth.RedirectURL.
	Addr string `mapstructure:"addr"`
}

// PolicyRule is one declarative (role, resource, action) grant.
type PolicyRule struct {
	Role     string `mapstructure:"role" validate:"required"`
	Resource string `mapstructure:"resource" validate:"required"`
	Action   string `mapstructure:"action" validate:"required"`
}

// PolicyGroup lets a role inherit the grants of other roles. Inheritance
// only exists where such a rule is declared.
type PolicyGroup struct {
	Role     string   `mapstructure:"role" validate:"required"`
	Includes []string `mapstructure:"includes" validate:"required,min=1"`
}

// Policy holds the declarative rule table loaded once at process start.
type Policy struct {
	// CacheTTL bounds the decision cache; zero disables caching.
	CacheTTL time.Duration `mapstructure:"cacheTtl"`

	// Resources and Actions declare the vocabulary rules may use.
	Resources []string `mapstructure:"resources"`
	Actions   []string `mapstructure:"actions"`

	Rules  []PolicyRule  `mapstructure:"rules"`
	Groups []PolicyGroup `mapstructure:"groups"`
}

// Config overall data structure.
type Config struct {
	DevMode bool   `mapstructure:"devMode"`
	Title   string `mapstructure:"title"`

	Log      logger.Log `mapstructure:"log"`
	Auth     Auth       `mapstructure:"auth"`
	Storage  Storage    `mapstructure:"storage"`
	API      API        `mapstructure:"api"`
	Callback Callback   `mapstructure:"callback"`
	Policy   Policy     `mapstructure:"policy"`
}
