package memory

import (
	"context"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/internal/domain/repository"
)

type TenantRepository struct {
	store *Store
}

func NewTenantRepository(store *Store) *TenantRepository {
	return &TenantRepository{store: store}
}

func (r *TenantRepository) Create(ctx context.Context, t *entity.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[t.Slug]; ok {
		return repository.ErrConflict
	}
	s.tenants[t.Slug] = *copyTenant(*t)
	return nil
}

func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTenant(t), nil
}

func (r *TenantRepository) Update(ctx context.Context, t *entity.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[t.Slug]; !ok {
		return repository.ErrNotFound
	}
	s.tenants[t.Slug] = *copyTenant(*t)
	return nil
}

var _ repository.TenantRepository = (*TenantRepository)(nil)
