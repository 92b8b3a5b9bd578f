package memory

import (
	"context"
	"strings"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/internal/domain/repository"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(u.Email)
	if _, ok := s.users[u.ID]; ok {
		return repository.ErrConflict
	}
	if _, ok := s.emails[email]; ok {
		return repository.ErrConflict
	}
	u.Email = email
	s.users[u.ID] = *copyUser(*u)
	s.emails[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

// Update persists the mutable fields of a user (Active, LastLogin). Identity,
// role and tenant assignment are fixed at provisioning.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Active = u.Active
	if u.LastLogin != nil {
		t := *u.LastLogin
		cur.LastLogin = &t
	} else {
		cur.LastLogin = nil
	}
	s.users[u.ID] = cur
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
