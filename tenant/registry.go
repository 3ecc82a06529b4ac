package tenant

import (
	"fmt"
	"sync"
)

// SourceConfig pairs a strategy identifier with its options. The order of a
// SourceConfig list is significant: earlier entries are strictly preferred.
type SourceConfig struct {
	Strategy string         `yaml:"strategy" json:"strategy"`
	Options  map[string]any `yaml:"options" json:"options"`
}

// Factory builds a strategy from its options map.
type Factory func(opts map[string]any) (Strategy, error)

// Registry maps strategy identifiers to factories, letting chains be built
// from configuration. Unknown identifiers fail at build time, never silently.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in strategies registered:
// header, subdomain, path, query, and token.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("header", func(opts map[string]any) (Strategy, error) {
		return NewHeaderStrategy(optString(opts, "name")), nil
	})
	r.Register("subdomain", func(opts map[string]any) (Strategy, error) {
		return NewSubdomainStrategy(optString(opts, "suffix")), nil
	})
	r.Register("path", func(opts map[string]any) (Strategy, error) {
		position, err := optInt(opts, "position", 1)
		if err != nil {
			return nil, err
		}
		return NewPathStrategy(position), nil
	})
	r.Register("query", func(opts map[string]any) (Strategy, error) {
		return NewQueryStrategy(optString(opts, "param")), nil
	})
	r.Register("token", func(opts map[string]any) (Strategy, error) {
		return NewTokenClaimStrategy(TokenClaimConfig{
			Claim:      optString(opts, "claim"),
			Header:     optString(opts, "header"),
			SigningKey: []byte(optString(opts, "signing_key")),
		}), nil
	})
	return r
}

// Register adds or replaces a factory under the given identifier.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Build constructs a chain from an ordered source list. An unknown strategy
// identifier or a factory rejecting its options is a configuration error
// surfaced here, before any request is served.
func (r *Registry) Build(configs []SourceConfig, opts ...ChainOption) (*Chain, error) {
	sources := make([]Source, 0, len(configs))
	for i, cfg := range configs {
		r.mu.RLock()
		factory, ok := r.factories[cfg.Strategy]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %q (source %d)", ErrUnknownStrategy, cfg.Strategy, i)
		}

		strategy, err := factory(cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i, cfg.Strategy, err)
		}
		sources = append(sources, Source{Name: cfg.Strategy, Strategy: strategy})
	}
	return NewChain(sources, opts...), nil
}

func optString(opts map[string]any, key string) string {
	if opts == nil {
		return ""
	}
	s, _ := opts[key].(string)
	return s
}

func optInt(opts map[string]any, key string, def int) (int, error) {
	if opts == nil {
		return def, nil
	}
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("option %q must be an integer, got %T", key, v)
	}
}
