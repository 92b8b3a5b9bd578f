package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// SeedOptions controls the bootstrap data written by Seed.
type SeedOptions struct {
	// PasswordHash is the bcrypt hash every seeded account logs in with.
	PasswordHash string
	// SampleNotes adds one welcome note per tenant. Each counts against the
	// tenant's free-plan allowance.
	SampleNotes bool
}

var seedEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type seedUser struct {
	id, email, name, tenant string
	role                    entity.Role
}

var seedTenants = []struct{ slug, name string }{
	{"acme", "Acme"},
	{"globex", "Globex"},
}

var seedUsers = []seedUser{
	{"user_admin_acme", "admin@acme.test", "Sarah Johnson", "acme", entity.RoleAdmin},
	{"user_member_acme", "user@acme.test", "Mike Chen", "acme", entity.RoleMember},
	{"user_admin_globex", "admin@globex.test", "Emma Davis", "globex", entity.RoleAdmin},
	{"user_member_globex", "user@globex.test", "Alex Kumar", "globex", entity.RoleMember},
}

// Seed writes the fixed bootstrap tenants, users and optional sample notes.
func Seed(ctx context.Context, store *Store, opts SeedOptions) error {
	tenants := NewTenantRepository(store)
	users := NewUserRepository(store)
	notes := NewNoteRepository(store)

	for _, t := range seedTenants {
		if err := tenants.Create(ctx, entity.NewFreeTenant(t.slug, t.name, seedEpoch)); err != nil {
			return fmt.Errorf("seed tenant %s: %w", t.slug, err)
		}
	}
	for _, u := range seedUsers {
		err := users.Create(ctx, &entity.User{
			ID:         u.id,
			Email:      u.email,
			Password:   opts.PasswordHash,
			Role:       u.role,
			TenantSlug: u.tenant,
			Name:       u.name,
			Active:     true,
			CreatedAt:  seedEpoch,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}
	if !opts.SampleNotes {
		return nil
	}
	for i, t := range seedTenants {
		at := time.Date(2025, 9, 1, 10+i, 0, 0, 0, time.UTC)
		n := &entity.Note{
			ID:         "note_sample_" + t.slug + "_1",
			Title:      "Welcome to " + t.name + " Notes",
			Content:    "This is a sample note for " + t.name + ". Only " + t.name + " users can see this note.",
			TenantSlug: t.slug,
			AuthorID:   "user_admin_" + t.slug,
			CreatedAt:  at,
			UpdatedAt:  at,
		}
		if err := notes.Create(ctx, n); err != nil {
			return fmt.Errorf("seed note %s: %w", n.ID, err)
		}
	}
	return nil
}
