package tenant

import (
	"fmt"
	"net/http"
)

// Source pairs a configured name with a strategy. The name identifies the
// source in events and match metadata.
type Source struct {
	Name     string
	Strategy Strategy
}

// MetadataPolicy filters match metadata before it reaches events and handlers.
type MetadataPolicy func(meta map[string]string) map[string]string

// AllowMetadata returns a policy that keeps only the listed keys.
func AllowMetadata(keys ...string) MetadataPolicy {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	return func(meta map[string]string) map[string]string {
		if len(meta) == 0 {
			return meta
		}
		out := make(map[string]string, len(meta))
		for k, v := range meta {
			if allowed[k] {
				out[k] = v
			}
		}
		return out
	}
}

// KeepAllMetadata returns a policy that preserves metadata verbatim.
func KeepAllMetadata() MetadataPolicy {
	return func(meta map[string]string) map[string]string { return meta }
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithChainEvents sets the event sink notified about per-source errors.
func WithChainEvents(events Events) ChainOption {
	return func(c *Chain) {
		if events != nil {
			c.events = events
		}
	}
}

// WithMetadataPolicy overrides the default metadata allow-list ({source, raw}).
func WithMetadataPolicy(policy MetadataPolicy) ChainOption {
	return func(c *Chain) {
		if policy != nil {
			c.policy = policy
		}
	}
}

// Chain tries an ordered list of sources until one produces a match.
//
// The chain is fail-open: a source reporting malformed input, or one that
// panics outright, is reported to the event sink and skipped - tenant
// resolution never takes down a request because of one misbehaving source.
// Ordering in the source list is the sole priority mechanism.
type Chain struct {
	sources []Source
	events  Events
	policy  MetadataPolicy
}

// NewChain creates a resolution chain over the given sources. The source
// slice is treated as fixed for the lifetime of the chain. A source with a
// nil strategy is tolerated and reported at resolution time, never fatal.
func NewChain(sources []Source, opts ...ChainOption) *Chain {
	c := &Chain{
		sources: sources,
		events:  NewNopEvents(),
		policy:  AllowMetadata(MetaSource, MetaRaw),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sources returns the configured source names in order.
func (c *Chain) Sources() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name
	}
	return names
}

// Resolve runs the chain against the request. It returns the first match, or
// nil when every source came up empty. Resolve itself never fails: all
// source-level errors are absorbed, classified, and emitted.
func (c *Chain) Resolve(r *http.Request) *Match {
	for _, src := range c.sources {
		match, err := c.try(src, r)
		if err != nil {
			c.events.SourceError(r.Context(), SourceErrorEvent{Source: src.Name, Err: err})
			continue
		}
		if match == nil {
			continue
		}

		if match.Source == "" {
			match.Source = src.Name
		}
		if match.Meta == nil {
			match.Meta = map[string]string{}
		}
		match.Meta[MetaSource] = match.Source
		match.Meta = c.policy(match.Meta)
		return match
	}
	return nil
}

// try invokes one source with panic containment. A panicking strategy is
// indistinguishable from one returning an error: classified and skipped.
func (c *Chain) try(src Source, r *http.Request) (match *Match, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			match = nil
			err = fmt.Errorf("source %q panicked: %v", src.Name, rec)
		}
	}()

	if src.Strategy == nil {
		return nil, fmt.Errorf("source %q has no strategy configured", src.Name)
	}
	return src.Strategy.Extract(r)
}
