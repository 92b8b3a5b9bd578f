package application

import "github.com/oksasatya/multitenant-notes/internal/domain/entity"

// AuthorizeTenantAccess is the single check every note operation passes before
// touching the repository. Tenants must be equal; no role overrides it.
func AuthorizeTenantAccess(p *Principal, resourceTenant string) error {
	if p == nil || p.TenantSlug == "" || resourceTenant == "" {
		return ErrAccessDenied
	}
	if p.TenantSlug != resourceTenant {
		return ErrAccessDenied
	}
	return nil
}

// RequireRole fails with ErrInsufficientPermissions unless p holds role.
func RequireRole(p *Principal, role entity.Role) error {
	if p == nil || p.Role != role {
		return ErrInsufficientPermissions
	}
	return nil
}
