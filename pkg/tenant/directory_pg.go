package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDirectory resolves tenants straight from the platform database,
// for engine instances colocated with it. The REST HTTPDirectory remains
// the default for edge deployments.
type PostgresDirectory struct {
	db *pgxpool.Pool
}

// NewPostgresDirectory creates a directory over an existing connection pool.
func NewPostgresDirectory(db *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const lookupQuery = `
SELECT id, company_name, subdomain, custom_domain, logo_url,
       primary_color, secondary_color, font_family, marketplace_enabled
FROM clients
WHERE id::text = $1 OR subdomain = $1 OR custom_domain = $1
LIMIT 1`

// Lookup matches the identifier against id, subdomain, and custom domain.
func (d *PostgresDirectory) Lookup(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		return nil, ErrTenantNotFound
	}

	var (
		id                 uuid.UUID
		name               *string
		subdomain          *string
		customDomain       *string
		logoURL            *string
		primaryColor       *string
		secondaryColor     *string
		fontFamily         *string
		marketplaceEnabled bool
	)

	err := d.db.QueryRow(ctx, lookupQuery, identifier).Scan(
		&id, &name, &subdomain, &customDomain, &logoURL,
		&primaryColor, &secondaryColor, &fontFamily, &marketplaceEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	t := &Tenant{
		ID:                 id.String(),
		MarketplaceEnabled: marketplaceEnabled,
	}
	if name != nil {
		t.Name = *name
	}
	if subdomain != nil {
		t.Subdomain = *subdomain
	}
	if customDomain != nil {
		t.CustomDomain = *customDomain
	}
	if logoURL != nil {
		t.LogoURL = *logoURL
	}
	if primaryColor != nil {
		t.PrimaryColor = *primaryColor
	}
	if secondaryColor != nil {
		t.SecondaryColor = *secondaryColor
	}
	if fontFamily != nil {
		t.FontFamily = *fontFamily
	}
	return t, nil
}
