package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ErrorHandler handles tenant-related request failures: resolution required
// but unsatisfied, inactive tenants, provider errors.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	key           Key
	required      bool
	errorHandler  ErrorHandler
	skipPaths     []string
	provider      Provider
	cache         Cache
	cacheTTL      time.Duration
	requireActive bool
	events        Events
	logger        *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithKey sets the scope key the resolved tenant is stored under.
func WithKey(key Key) Option {
	return func(c *config) {
		if key != "" {
			c.key = key
		}
	}
}

// WithRequired makes resolution mandatory: unresolved requests are handed to
// the missing-tenant handler instead of reaching application code.
func WithRequired(required bool) Option {
	return func(c *config) {
		c.required = required
	}
}

// WithMissingTenantHandler sets the handler invoked when resolution fails on
// a route that requires a tenant, and for provider-level rejections. The
// default responds 403 Forbidden.
func WithMissingTenantHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithProvider enables loading the full tenant record for each resolved
// identifier. Without a provider the raw identifier string is stored.
func WithProvider(provider Provider) Option {
	return func(c *config) {
		c.provider = provider
	}
}

// WithCache sets the cache used in front of the provider.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long provider-loaded tenants stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithRequireActive rejects provider-loaded tenants that are not active.
// Only meaningful together with WithProvider. Enabled by default.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// WithEvents sets the sink receiving tenant.resolved, tenant.cleared, and
// source.error events.
func WithEvents(events Events) Option {
	return func(c *config) {
		if events != nil {
			c.events = events
		}
	}
}

// WithLogger sets the logger used for the default event sink.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantRequired):
		http.Error(w, "Tenant required", http.StatusForbidden)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
