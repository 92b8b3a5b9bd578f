package memory

import (
	"context"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/internal/domain/repository"
)

type NoteRepository struct {
	store *Store
}

func NewNoteRepository(store *Store) *NoteRepository {
	return &NoteRepository{store: store}
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[n.ID]; ok {
		return repository.ErrConflict
	}
	s.notes[n.ID] = *n
	s.order = append(s.order, n.ID)
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyNote(n), nil
}

// ListByTenant returns the tenant's notes in insertion order.
func (r *NoteRepository) ListByTenant(ctx context.Context, tenantSlug string) ([]*entity.Note, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Note, 0)
	for _, id := range s.order {
		if n := s.notes[id]; n.TenantSlug == tenantSlug {
			out = append(out, copyNote(n))
		}
	}
	return out, nil
}

func (r *NoteRepository) CountByTenant(ctx context.Context, tenantSlug string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notes {
		if n.TenantSlug == tenantSlug {
			count++
		}
	}
	return count, nil
}

// Update stores title, content and updatedAt. Tenant, author and createdAt of the
// stored note are kept whatever the caller passes.
func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.notes[n.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title = n.Title
	cur.Content = n.Content
	cur.UpdatedAt = n.UpdatedAt
	s.notes[n.ID] = cur
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.notes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ repository.NoteRepository = (*NoteRepository)(nil)
