package tenant

import "net/http"

// Metadata keys attached to matches by the built-in strategies.
const (
	MetaSource = "source"
	MetaRaw    = "raw"
)

// Match is one successful extraction: the tenant identifier plus observability
// metadata. Source is stamped by the chain from the configured source name;
// Meta carries strategy-specific details (e.g. the raw input) and is used only
// for events and logging, never for control flow.
type Match struct {
	Identifier string
	Source     string
	Meta       map[string]string
}

// Strategy extracts a tenant identifier from an HTTP request.
//
// The three outcomes are encoded in the return values:
//   - (match, nil): the strategy found an identifier.
//   - (nil, nil): no identifier present - a normal outcome, not an error.
//   - (nil, err): the strategy recognized malformed input (e.g. an invalid
//     token). The chain logs it and falls through to the next strategy.
//
// Strategies must treat the request as read-only and must not share mutable
// state with each other.
type Strategy interface {
	Extract(r *http.Request) (*Match, error)
}

// StrategyFunc is an adapter to allow the use of ordinary functions as Strategies.
type StrategyFunc func(r *http.Request) (*Match, error)

func (f StrategyFunc) Extract(r *http.Request) (*Match, error) {
	return f(r)
}
