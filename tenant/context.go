package tenant

import (
	"context"
	"log/slog"
)

// scopeKey is a private type to prevent collisions with other context keys.
type scopeKey struct{}

// NewContext attaches a scope to the context. The middleware does this once
// per request; call it directly only when building execution units by hand
// (background jobs, tests).
func NewContext(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom retrieves the scope from the context.
// Returns nil, false if no scope is attached.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok && scope != nil
}

// Value returns the tenant value stored under DefaultKey.
func Value(ctx context.Context) (any, bool) {
	return ValueForKey(ctx, DefaultKey)
}

// ValueForKey returns the tenant value stored under key. The second return
// value is false when no scope is attached or no entry exists - distinct from
// a stored nil, empty string, or zero.
func ValueForKey(ctx context.Context, key Key) (any, bool) {
	scope, ok := ScopeFrom(ctx)
	if !ok {
		return nil, false
	}
	return scope.Get(key)
}

// MustValue returns the tenant value stored under DefaultKey. Panics if
// absent. Use this only in handlers that cannot function without a tenant.
func MustValue(ctx context.Context) any {
	v, ok := Value(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return v
}

// IdentifierFromContext returns the tenant value under DefaultKey as a string
// identifier. Returns "", false when absent or when the stored value is a
// full *Tenant record rather than a raw identifier (use FromContext then).
func IdentifierFromContext(ctx context.Context) (string, bool) {
	v, ok := Value(ctx)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// FromContext returns the tenant record under DefaultKey. Only available when
// the middleware was configured with a Provider (otherwise the scope holds
// the raw identifier string).
func FromContext(ctx context.Context) (*Tenant, bool) {
	v, ok := Value(ctx)
	if !ok {
		return nil, false
	}
	t, ok := v.(*Tenant)
	return t, ok && t != nil
}

// SnapshotFromContext captures the entry under key from the context's scope.
func SnapshotFromContext(ctx context.Context, key Key) (Snapshot, bool) {
	scope, ok := ScopeFrom(ctx)
	if !ok {
		return Snapshot{}, false
	}
	return scope.Snapshot(key)
}

// LoggerExtractor returns a context extractor for the logger package that
// injects the resolved tenant into log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, ok := Value(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		switch t := v.(type) {
		case *Tenant:
			return slog.String("tenant_id", t.ID.String()), true
		case string:
			return slog.String("tenant_id", t), true
		default:
			return slog.Any("tenant", v), true
		}
	}
}
