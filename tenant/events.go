package tenant

import (
	"context"
	"log/slog"
)

// ResolvedEvent is emitted when a request's tenant has been resolved and stored.
type ResolvedEvent struct {
	Tenant any
	Source string
	Meta   map[string]string
}

// ClearedEvent is emitted when a request's tenant entry is cleared at the end
// of the request lifecycle.
type ClearedEvent struct {
	Tenant any
}

// SourceErrorEvent is emitted when one source fails or faults during resolution.
type SourceErrorEvent struct {
	Source string
	Err    error
}

// Events receives the semantic events emitted by the chain and middleware.
// Implementations must not block the request path; anything expensive should
// be handed off internally.
type Events interface {
	TenantResolved(ctx context.Context, e ResolvedEvent)
	TenantCleared(ctx context.Context, e ClearedEvent)
	SourceError(ctx context.Context, e SourceErrorEvent)
}

// NewLogEvents returns an event sink writing structured records through slog.
func NewLogEvents(log *slog.Logger) Events {
	if log == nil {
		log = slog.Default()
	}
	return &logEvents{log: log}
}

type logEvents struct {
	log *slog.Logger
}

func (l *logEvents) TenantResolved(ctx context.Context, e ResolvedEvent) {
	attrs := []any{
		slog.Any("tenant", e.Tenant),
		slog.String("source", e.Source),
	}
	for k, v := range e.Meta {
		if k == MetaSource {
			continue
		}
		attrs = append(attrs, slog.String("meta_"+k, v))
	}
	l.log.InfoContext(ctx, "tenant.resolved", attrs...)
}

func (l *logEvents) TenantCleared(ctx context.Context, e ClearedEvent) {
	l.log.DebugContext(ctx, "tenant.cleared", slog.Any("tenant", e.Tenant))
}

func (l *logEvents) SourceError(ctx context.Context, e SourceErrorEvent) {
	l.log.WarnContext(ctx, "source.error",
		slog.String("strategy", e.Source),
		slog.String("reason", e.Err.Error()),
	)
}

// NewNopEvents returns an event sink that discards everything.
func NewNopEvents() Events {
	return nopEvents{}
}

type nopEvents struct{}

func (nopEvents) TenantResolved(context.Context, ResolvedEvent) {}
func (nopEvents) TenantCleared(context.Context, ClearedEvent)   {}
func (nopEvents) SourceError(context.Context, SourceErrorEvent) {}
