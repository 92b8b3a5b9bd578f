package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/internal/domain/repository"
)

var t0 = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func newNote(t *testing.T, tenant, title string) *entity.Note {
	t.Helper()
	n, err := entity.NewNote(tenant, "user-1", title, "content of "+title, t0)
	require.NoError(t, err)
	return n
}

func TestNoteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(NewStore())

	n := newNote(t, "acme", "first")
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	got.Title = "changed"
	got.TenantSlug = "globex"
	got.UpdatedAt = t0.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", again.Title)
	assert.Equal(t, "acme", again.TenantSlug, "tenant must not change on update")
	assert.Equal(t, t0, again.CreatedAt)

	require.NoError(t, repo.Delete(ctx, n.ID))
	assert.ErrorIs(t, repo.Delete(ctx, n.ID), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(NewStore())
	n := newNote(t, "acme", "first")
	require.NoError(t, repo.Create(ctx, n))

	n.Title = "mutated after create"
	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	got.Content = "mutated after get"
	again, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "content of first", again.Content)
}

func TestNoteRepository_TenantScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(NewStore())
	a1, a2, g1 := newNote(t, "acme", "a1"), newNote(t, "acme", "a2"), newNote(t, "globex", "g1")
	for _, n := range []*entity.Note{a1, g1, a2} {
		require.NoError(t, repo.Create(ctx, n))
	}

	acme, err := repo.ListByTenant(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, acme, 2)
	assert.Equal(t, a1.ID, acme[0].ID)
	assert.Equal(t, a2.ID, acme[1].ID)

	count, err := repo.CountByTenant(ctx, "globex")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	none, err := repo.ListByTenant(ctx, "initech")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUserRepository_EmailLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "Admin@Acme.test", Role: entity.RoleAdmin, TenantSlug: "acme", Active: true}))

	u, err := repo.GetByEmail(ctx, " admin@acme.TEST ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "admin@acme.test", u.Email)

	err = repo.Create(ctx, &entity.User{ID: "u2", Email: "admin@acme.test"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = repo.GetByEmail(ctx, "nobody@acme.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@acme.test", Role: entity.RoleMember, TenantSlug: "acme", Active: true}))

	login := t0
	require.NoError(t, repo.Update(ctx, &entity.User{ID: "u1", Role: entity.RoleAdmin, TenantSlug: "globex", Active: false, LastLogin: &login}))

	u, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, u.Role)
	assert.Equal(t, "acme", u.TenantSlug)
	assert.False(t, u.Active)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, t0, *u.LastLogin)
}

func TestTenantRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTenantRepository(NewStore())
	require.NoError(t, repo.Create(ctx, entity.NewFreeTenant("acme", "Acme", t0)))
	assert.ErrorIs(t, repo.Create(ctx, entity.NewFreeTenant("acme", "Acme", t0)), repository.ErrConflict)

	tn, err := repo.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	require.True(t, tn.UpgradeToPro(t0))

	stale, err := repo.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, stale.Plan, "changes are invisible until Update")

	require.NoError(t, repo.Update(ctx, tn))
	fresh, err := repo.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPro, fresh.Plan)
	assert.Equal(t, entity.Unlimited, fresh.NoteLimit)

	assert.ErrorIs(t, repo.Update(ctx, entity.NewFreeTenant("initech", "Initech", t0)), repository.ErrNotFound)
}

func TestLockTenant_Exclusive(t *testing.T) {
	s := NewStore()
	counter, maxSeen, inside := 0, 0, 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.LockTenant("acme")
			defer unlock()
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			counter++
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Equal(t, 1, maxSeen)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, Seed(ctx, s, SeedOptions{PasswordHash: "hash", SampleNotes: true}))

	users := NewUserRepository(s)
	for _, email := range []string{"admin@acme.test", "user@acme.test", "admin@globex.test", "user@globex.test"} {
		u, err := users.GetByEmail(ctx, email)
		require.NoError(t, err, email)
		assert.True(t, u.Active)
		assert.Equal(t, "hash", u.Password)
	}

	tenants := NewTenantRepository(s)
	for _, slug := range []string{"acme", "globex"} {
		tn, err := tenants.GetBySlug(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, entity.PlanFree, tn.Plan)
		assert.Equal(t, 3, tn.NoteLimit)
	}

	count, err := NewNoteRepository(s).CountByTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Error(t, Seed(ctx, s, SeedOptions{}), "seeding twice conflicts")
}

func TestSeed_WithoutSampleNotes(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, Seed(ctx, s, SeedOptions{PasswordHash: "hash"}))

	count, err := NewNoteRepository(s).CountByTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Zero(t, count)
}
