package repository

import (
	"context"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// NoteRepository owns the note collection. Every read that returns more than one
// note is scoped to a tenant.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	ListByTenant(ctx context.Context, tenantSlug string) ([]*entity.Note, error)
	CountByTenant(ctx context.Context, tenantSlug string) (int, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id string) error
}
