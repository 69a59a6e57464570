package tenant

import "context"

// Tenant is one branded marketplace instance within the platform.
// ID is the only field guaranteed present; every other field is optional
// and must be treated as absent-safe by consumers.
type Tenant struct {
	ID                 string `json:"id"`
	Name               string `json:"company_name,omitempty"`
	Subdomain          string `json:"subdomain,omitempty"`
	CustomDomain       string `json:"custom_domain,omitempty"`
	LogoURL            string `json:"logo_url,omitempty"`
	PrimaryColor       string `json:"primary_color,omitempty"`
	SecondaryColor     string `json:"secondary_color,omitempty"`
	FontFamily         string `json:"font_family,omitempty"`
	MarketplaceEnabled bool   `json:"marketplace_enabled"`
}

// DisplayName returns the tenant name suitable for UI display,
// falling back to the ID when the name is absent.
func (t *Tenant) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Directory loads tenant records from a data source. Implementations
// perform a single lookup per invocation and never retry; failures
// surface to the caller, which owns the retry policy.
type Directory interface {
	// Lookup retrieves a tenant using any unique identifier
	// (subdomain, custom domain, or explicit id).
	// Returns ErrTenantNotFound if no tenant matches the identifier.
	Lookup(ctx context.Context, identifier string) (*Tenant, error)
}
