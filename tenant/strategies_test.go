package tenant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/tenant"
)

func TestHeaderStrategy(t *testing.T) {
	t.Parallel()

	t.Run("extracts configured header", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewHeaderStrategy("X-Org-ID")
		req := testRequest()
		req.Header.Set("X-Org-ID", "acme")

		match, err := s.Extract(req)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("defaults to X-Tenant-ID", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewHeaderStrategy("")
		req := testRequest()
		req.Header.Set("X-Tenant-ID", "acme")

		match, err := s.Extract(req)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("header lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewHeaderStrategy("X-Tenant-ID")
		req := testRequest()
		req.Header.Set("x-tenant-id", "acme")

		match, err := s.Extract(req)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("missing header is not found", func(t *testing.T) {
		t.Parallel()

		match, err := tenant.NewHeaderStrategy("").Extract(testRequest())
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("malformed value is an error", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewHeaderStrategy("")
		req := testRequest()
		req.Header.Set("X-Tenant-ID", "../../etc/passwd")

		match, err := s.Extract(req)
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
		assert.Nil(t, match)
	})
}

func TestSubdomainStrategy(t *testing.T) {
	t.Parallel()

	extract := func(t *testing.T, s tenant.Strategy, host string) (*tenant.Match, error) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "http://"+host+"/", nil)
		req.Host = host
		return s.Extract(req)
	}

	t.Run("extracts subdomain", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(""), "acme.example.com")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("strips port", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(""), "acme.example.com:8080")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("strips configured suffix", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(".saas.com"), "acme.saas.com")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("base domain is not found", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(""), "example.com")
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("skips www", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(""), "www.acme.example.com")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("bare www is not found", func(t *testing.T) {
		t.Parallel()

		match, err := extract(t, tenant.NewSubdomainStrategy(""), "www.example.com")
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestPathStrategy(t *testing.T) {
	t.Parallel()

	t.Run("extracts configured segment", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewPathStrategy(2)
		req := httptest.NewRequest(http.MethodGet, "http://example.com/tenants/acme/dashboard", nil)

		match, err := s.Extract(req)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("position beyond path is not found", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewPathStrategy(5)
		req := httptest.NewRequest(http.MethodGet, "http://example.com/tenants", nil)

		match, err := s.Extract(req)
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("root path is not found", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewPathStrategy(1)
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)

		match, err := s.Extract(req)
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("invalid position is an error", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewPathStrategy(0)
		_, err := s.Extract(testRequest())
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})
}

func TestQueryStrategy(t *testing.T) {
	t.Parallel()

	t.Run("extracts configured parameter", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewQueryStrategy("org")
		req := httptest.NewRequest(http.MethodGet, "http://example.com/?org=acme", nil)

		match, err := s.Extract(req)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("missing parameter is not found", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewQueryStrategy("org")
		match, err := s.Extract(testRequest())
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

type stubSession map[string]string

func (s stubSession) GetString(key string) string { return s[key] }

func TestSessionStrategy(t *testing.T) {
	t.Parallel()

	t.Run("extracts from session", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewSessionStrategy(func(*http.Request) (tenant.SessionData, error) {
			return stubSession{"tenant_id": "acme"}, nil
		}, "")

		match, err := s.Extract(testRequest())
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "acme", match.Identifier)
	})

	t.Run("session error is an error outcome", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewSessionStrategy(func(*http.Request) (tenant.SessionData, error) {
			return nil, errors.New("session backend down")
		}, "")

		match, err := s.Extract(testRequest())
		assert.Error(t, err)
		assert.Nil(t, match)
	})

	t.Run("nil session is not found", func(t *testing.T) {
		t.Parallel()

		s := tenant.NewSessionStrategy(func(*http.Request) (tenant.SessionData, error) {
			return nil, nil
		}, "")

		match, err := s.Extract(testRequest())
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

// Scenario: header first, subdomain second; no header present, host carries
// the tenant. The subdomain source wins and says so in the metadata.
func TestHeaderThenSubdomainFallthrough(t *testing.T) {
	t.Parallel()

	chain := tenant.NewChain([]tenant.Source{
		{Name: "header", Strategy: tenant.NewHeaderStrategy("x-tenant-id")},
		{Name: "subdomain", Strategy: tenant.NewSubdomainStrategy("")},
	})

	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	req.Host = "acme.example.com"

	match := chain.Resolve(req)
	require.NotNil(t, match)
	assert.Equal(t, "acme", match.Identifier)
	assert.Equal(t, "subdomain", match.Source)
	assert.Equal(t, "subdomain", match.Meta[tenant.MetaSource])
}
