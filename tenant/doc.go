// Package tenant resolves the tenant a request belongs to and keeps that
// identity available for the lifetime of the request.
//
// The package is built around four core concepts:
//
//  1. Strategies - Extract tenant identifiers from HTTP requests using various
//     techniques (header, subdomain, path, query, token claim, session).
//  2. Chain - Tries configured strategies in order with fail-open semantics:
//     one misbehaving strategy never blocks the next one or the request.
//  3. Scope - A request-scoped store holding the resolved tenant value, with a
//     snapshot protocol for carrying the value into background work.
//  4. Middleware - Orchestrates resolution, storage, cleanup, and events.
//
// # Usage
//
//	import "github.com/tenantkit/tenantkit/tenant"
//
//	chain := tenant.NewChain([]tenant.Source{
//		{Name: "header", Strategy: tenant.NewHeaderStrategy("X-Tenant-ID")},
//		{Name: "subdomain", Strategy: tenant.NewSubdomainStrategy(".saas.com")},
//	})
//
//	mw := tenant.Middleware(chain,
//		tenant.WithRequired(true),
//		tenant.WithSkipPaths([]string{"/health"}),
//	)
//
//	router.Use(mw)
//
//	// Access the tenant in handlers
//	func handler(w http.ResponseWriter, r *http.Request) {
//		id, ok := tenant.IdentifierFromContext(r.Context())
//		if !ok {
//			// Handle no tenant case
//			return
//		}
//		_ = id
//	}
//
// # Resolution semantics
//
// A strategy reports one of three outcomes: a match, "not found" (nil match,
// nil error - a normal outcome, never an error), or an error for input it
// recognizes as malformed. The chain treats errors and panics inside a
// strategy the same way as "not found": the event sink is notified and the
// next strategy is tried. Ordering in the source list is the sole priority
// mechanism.
//
// # Scope and snapshots
//
// The middleware allocates one Scope per request and stores it in the request
// context. The scope is exclusively owned by that request; two concurrent
// requests never observe each other's entries. Snapshot produces an immutable
// copy of one entry that can ride along with deferred work (see the queue and
// async packages) and be re-applied in another goroutine.
//
// # Providers and caching
//
// Optionally, a Provider loads a full tenant record for the resolved
// identifier. Lookups go through a Cache (in-memory TTL+LRU by default, Redis
// available) to keep the hot path off the database.
//
// # Events
//
// The middleware and chain emit three semantic events: tenant.resolved,
// tenant.cleared, and source.error. The default sink logs them through
// log/slog; custom sinks implement the Events interface.
package tenant
