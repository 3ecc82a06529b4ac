package tenant

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Middleware creates HTTP middleware that resolves the tenant for each
// inbound request through the chain, stores it in a fresh request scope, and
// guarantees the scope entry is cleared when the request finishes - on every
// exit path, including a panicking handler. A stale entry surviving into a
// reused execution unit would leak one tenant's identity into another
// request, so cleanup is the one hard guarantee here.
func Middleware(chain *Chain, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		key:           DefaultKey,
		errorHandler:  defaultErrorHandler,
		cache:         NewNoOpCache(),
		cacheTTL:      5 * time.Minute,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.events == nil {
		if cfg.logger != nil {
			cfg.events = NewLogEvents(cfg.logger)
		} else {
			cfg.events = NewNopEvents()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			scope := NewScope()
			r = r.WithContext(NewContext(r.Context(), scope))
			ctx := r.Context()

			match := chain.Resolve(r)
			if match == nil {
				if cfg.required {
					cfg.errorHandler(w, r, ErrTenantRequired)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			value := any(match.Identifier)
			if cfg.provider != nil {
				loaded, err := cfg.load(r, match.Identifier)
				switch {
				case err == nil:
					if cfg.requireActive && !loaded.Active {
						cfg.errorHandler(w, r, ErrInactiveTenant)
						return
					}
					value = loaded
				case errors.Is(err, ErrTenantNotFound):
					if cfg.required {
						cfg.errorHandler(w, r, err)
						return
					}
					next.ServeHTTP(w, r)
					return
				default:
					// Provider outage: keep serving with the raw identifier
					// rather than taking the request down with the backend.
					cfg.events.SourceError(ctx, SourceErrorEvent{Source: "provider", Err: err})
				}
			}

			scope.Set(cfg.key, value)
			cfg.events.TenantResolved(ctx, ResolvedEvent{
				Tenant: value,
				Source: match.Source,
				Meta:   match.Meta,
			})

			defer func() {
				if v, ok := scope.Get(cfg.key); ok {
					scope.Clear(cfg.key)
					cfg.events.TenantCleared(ctx, ClearedEvent{Tenant: v})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// load consults the cache before the provider and caches successful lookups.
func (c *config) load(r *http.Request, identifier string) (*Tenant, error) {
	ctx := r.Context()
	if cached, ok := c.cache.Get(ctx, identifier); ok {
		return cached, nil
	}

	loaded, err := c.provider.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, identifier, loaded, c.cacheTTL)
	return loaded, nil
}

// RequireTenant creates middleware that ensures a tenant entry is present in
// the request scope under DefaultKey. Useful for protecting route subtrees
// when the resolving middleware itself runs in non-required mode.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := Value(r.Context()); !ok {
				errorHandler(w, r, ErrTenantRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
