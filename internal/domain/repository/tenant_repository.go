package repository

import (
	"context"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// TenantRepository defines storage operations on tenants, keyed by slug.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, t *entity.Tenant) error
}

// TenantLocker serializes work on a single tenant. The returned func releases the lock.
type TenantLocker interface {
	LockTenant(slug string) (unlock func())
}
