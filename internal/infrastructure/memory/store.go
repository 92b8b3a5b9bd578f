// Package memory is the volatile datastore: users, tenants and notes held in
// mutex-guarded maps for the lifetime of the process.
package memory

import (
	"sync"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/internal/domain/repository"
)

// Store owns every table. Repositories hand out copies so callers can never
// mutate stored records without going through Update.
type Store struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	emails  map[string]string // email -> user id
	tenants map[string]entity.Tenant
	notes   map[string]entity.Note
	order   []string // note ids in insertion order

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[string]entity.User),
		emails:  make(map[string]string),
		tenants: make(map[string]entity.Tenant),
		notes:   make(map[string]entity.Note),
		locks:   make(map[string]*sync.Mutex),
	}
}

// LockTenant takes the exclusive lock of one tenant. Note creation and plan
// upgrades hold it so a limit check and the insert that follows cannot interleave
// with another create or an upgrade on the same tenant.
func (s *Store) LockTenant(slug string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[slug]
	if !ok {
		l = &sync.Mutex{}
		s.locks[slug] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

var _ repository.TenantLocker = (*Store)(nil)

func copyUser(u entity.User) *entity.User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return &u
}

func copyTenant(t entity.Tenant) *entity.Tenant {
	if t.UpgradedAt != nil {
		at := *t.UpgradedAt
		t.UpgradedAt = &at
	}
	return &t
}

func copyNote(n entity.Note) *entity.Note {
	return &n
}
