package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxIdentifierLength prevents abuse via very long tenant IDs and keeps
	// identifiers DNS-compatible.
	MaxIdentifierLength = 63

	// DefaultHeaderName is the header consulted by NewHeaderStrategy when no
	// name is given.
	DefaultHeaderName = "X-Tenant-ID"
)

// identifierPattern ensures safe identifiers: alphanumeric start, allows hyphens.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

func isValidIdentifier(id string) bool {
	if id == "" || len(id) > MaxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(id)
}

// NewHeaderStrategy extracts the tenant identifier from an HTTP header.
// Defaults to "X-Tenant-ID" if headerName is empty. Header lookup is
// case-insensitive per net/http semantics.
func NewHeaderStrategy(headerName string) Strategy {
	if headerName == "" {
		headerName = DefaultHeaderName
	}

	return StrategyFunc(func(req *http.Request) (*Match, error) {
		value := strings.TrimSpace(req.Header.Get(headerName))
		if value == "" {
			return nil, nil
		}

		if !isValidIdentifier(value) {
			return nil, fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, value)
		}

		return &Match{
			Identifier: value,
			Meta:       map[string]string{MetaRaw: value},
		}, nil
	})
}

// NewSubdomainStrategy extracts the tenant from the request subdomain,
// optionally stripping a suffix (e.g. ".saas.com"). Returns no match for the
// base domain and skips a leading "www".
func NewSubdomainStrategy(suffix string) Strategy {
	return StrategyFunc(func(req *http.Request) (*Match, error) {
		host := req.Host

		// Remove port if present
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		originalParts := strings.Split(host, ".")

		if suffix != "" && strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			host = host[:len(host)-len(suffix)]
		}

		parts := strings.Split(host, ".")
		if len(parts) == 0 || parts[0] == "" {
			return nil, nil
		}

		subdomain := parts[0]
		// Skip www prefix, use next subdomain if available
		if subdomain == "www" {
			if len(parts) < 2 {
				return nil, nil
			}
			subdomain = parts[1]
		}

		// Require at least 3 parts for proper subdomain.domain.tld structure
		if len(originalParts) < 3 {
			return nil, nil
		}

		subdomain = strings.TrimSpace(subdomain)
		if subdomain == "" {
			return nil, nil
		}
		if !isValidIdentifier(subdomain) {
			return nil, fmt.Errorf("%w: subdomain %q", ErrInvalidIdentifier, subdomain)
		}

		return &Match{
			Identifier: subdomain,
			Meta:       map[string]string{MetaRaw: req.Host},
		}, nil
	})
}

// NewPathStrategy extracts the tenant from the URL path segment at a 1-based
// position. Position 2 extracts from /tenants/{id}/dashboard.
func NewPathStrategy(position int) Strategy {
	return StrategyFunc(func(req *http.Request) (*Match, error) {
		if position < 1 {
			return nil, fmt.Errorf("%w: invalid path position %d", ErrInvalidIdentifier, position)
		}

		path := strings.TrimPrefix(req.URL.Path, "/")
		path = strings.TrimSuffix(path, "/")
		if path == "" {
			return nil, nil
		}

		parts := strings.Split(path, "/")
		if position > len(parts) {
			return nil, nil
		}

		value := strings.TrimSpace(parts[position-1])
		if value == "" {
			return nil, nil
		}
		if !isValidIdentifier(value) {
			return nil, fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, value)
		}

		return &Match{
			Identifier: value,
			Meta:       map[string]string{MetaRaw: req.URL.Path},
		}, nil
	})
}

// NewQueryStrategy extracts the tenant from a URL query parameter.
// Defaults to "tenant" if param is empty.
func NewQueryStrategy(param string) Strategy {
	if param == "" {
		param = "tenant"
	}

	return StrategyFunc(func(req *http.Request) (*Match, error) {
		value := strings.TrimSpace(req.URL.Query().Get(param))
		if value == "" {
			return nil, nil
		}

		if !isValidIdentifier(value) {
			return nil, fmt.Errorf("%w: query value %q", ErrInvalidIdentifier, value)
		}

		return &Match{
			Identifier: value,
			Meta:       map[string]string{MetaRaw: value},
		}, nil
	})
}

// SessionData represents the minimal session interface needed by the session strategy.
type SessionData interface {
	GetString(key string) string
}

// NewSessionStrategy extracts the tenant from session data. Useful for
// applications where users can switch between tenants. The sessionKey defaults
// to "tenant_id" when empty.
func NewSessionStrategy(getSession func(r *http.Request) (SessionData, error), sessionKey string) Strategy {
	if sessionKey == "" {
		sessionKey = "tenant_id"
	}

	return StrategyFunc(func(req *http.Request) (*Match, error) {
		if getSession == nil {
			return nil, errors.New("session strategy: GetSession function not configured")
		}

		session, err := getSession(req)
		if err != nil {
			return nil, fmt.Errorf("session strategy: %w", err)
		}
		if session == nil {
			return nil, nil
		}

		value := session.GetString(sessionKey)
		if value == "" {
			return nil, nil
		}

		return &Match{
			Identifier: value,
			Meta:       map[string]string{MetaRaw: sessionKey},
		}, nil
	})
}
