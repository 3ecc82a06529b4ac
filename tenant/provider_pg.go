package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTenantsTable is the table queried by the Postgres provider.
const DefaultTenantsTable = "tenants"

// PGProvider loads tenant records from PostgreSQL. The identifier may be the
// tenant UUID or its subdomain; both are matched in a single query.
type PGProvider struct {
	pool  *pgxpool.Pool
	table string
}

// NewPGProvider creates a provider on top of an existing connection pool.
// An empty table name falls back to DefaultTenantsTable.
func NewPGProvider(pool *pgxpool.Pool, table string) *PGProvider {
	if table == "" {
		table = DefaultTenantsTable
	}
	return &PGProvider{pool: pool, table: table}
}

// GetByIdentifier retrieves a tenant by UUID or subdomain.
// Returns ErrTenantNotFound when no row matches.
func (p *PGProvider) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	query := fmt.Sprintf(`
		SELECT id, subdomain, name, logo_url, plan_id, active, created_at
		FROM %s
		WHERE id::text = $1 OR subdomain = $1
		LIMIT 1`, p.table)

	var t Tenant
	err := p.pool.QueryRow(ctx, query, identifier).Scan(
		&t.ID, &t.Subdomain, &t.Name, &t.Logo, &t.PlanID, &t.Active, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("tenant lookup for %q: %w", identifier, err)
	}
	return &t, nil
}
