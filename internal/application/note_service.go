package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	repo "github.com/oksasatya/multitenant-notes/internal/domain/repository"
	"github.com/oksasatya/multitenant-notes/internal/metrics"
	"github.com/oksasatya/multitenant-notes/pkg/events"
	"github.com/oksasatya/multitenant-notes/pkg/helpers"
)

// NoteService implements tenant-scoped note CRUD. Every operation takes the
// authenticated principal and never reads or writes outside its tenant.
type NoteService struct {
	Notes   repo.NoteRepository
	Tenants repo.TenantRepository
	Locker  repo.TenantLocker
	Events  EventPublisher
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
	// Escape is applied to title and content after they pass validation.
	Escape func(string) string
}

func NewNoteService(notes repo.NoteRepository, tenants repo.TenantRepository, locker repo.TenantLocker, pub EventPublisher, logger *logrus.Logger, m *metrics.Metrics) *NoteService {
	return &NoteService{
		Notes:   notes,
		Tenants: tenants,
		Locker:  locker,
		Events:  pub,
		Logger:  logger,
		Metrics: m,
		Now:     time.Now,
		Escape:  helpers.SanitizeText,
	}
}

// NoteList is a tenant's notes together with its current plan usage.
type NoteList struct {
	Notes  []*entity.Note
	Tenant *entity.Tenant
	Usage  Usage
}

func (s *NoteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *NoteService) escape(v string) string {
	if s.Escape != nil {
		return s.Escape(v)
	}
	return v
}

func (s *NoteService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// List returns the principal's tenant notes, most recently updated first.
func (s *NoteService) List(ctx context.Context, p *Principal) (*NoteList, error) {
	t, err := s.tenantOf(ctx, p)
	if err != nil {
		return nil, err
	}
	notes, err := s.Notes.ListByTenant(ctx, t.Slug)
	if err != nil {
		return nil, err
	}
	sortNotes(notes)
	return &NoteList{Notes: notes, Tenant: t, Usage: CheckCreateAllowed(t, len(notes))}, nil
}

// Get returns one note. A note of another tenant is reported as not found.
func (s *NoteService) Get(ctx context.Context, p *Principal, id string) (*entity.Note, error) {
	return s.load(ctx, p, id, "read")
}

// Create validates the trimmed input, escapes it, then checks the plan limit
// and inserts while holding the tenant lock so concurrent creates cannot
// overshoot the limit.
func (s *NoteService) Create(ctx context.Context, p *Principal, title, content string) (*entity.Note, error) {
	if p == nil {
		return nil, ErrAccessDenied
	}
	n, err := entity.NewNote(p.TenantSlug, p.UserID, title, content, s.now().UTC())
	if err != nil {
		return nil, err
	}
	n.Title, n.Content = s.escape(n.Title), s.escape(n.Content)

	unlock := s.Locker.LockTenant(p.TenantSlug)
	t, err := s.tenantOf(ctx, p)
	if err != nil {
		unlock()
		return nil, err
	}
	count, err := s.Notes.CountByTenant(ctx, t.Slug)
	if err != nil {
		unlock()
		return nil, err
	}
	if usage := CheckCreateAllowed(t, count); !usage.Allowed {
		unlock()
		s.Metrics.LimitRejected(t.Slug, t.Plan.String())
		s.log().WithFields(logrus.Fields{
			"tenant":  t.Slug,
			"user_id": p.UserID,
			"current": usage.Current,
			"limit":   usage.Limit,
		}).Info("note limit reached")
		return nil, &LimitError{Usage: usage}
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	s.Metrics.NoteCreated(n.TenantSlug)
	s.log().WithFields(logrus.Fields{"tenant": n.TenantSlug, "note_id": n.ID, "user_id": p.UserID}).Info("note created")
	s.emit(ctx, p, events.NoteCreated, n, map[string]any{"title": n.Title})
	return n, nil
}

// Update changes the provided fields of a note. The payload is validated
// before the note is looked up.
func (s *NoteService) Update(ctx context.Context, p *Principal, id string, title, content *string) (*entity.Note, error) {
	if p == nil {
		return nil, ErrAccessDenied
	}
	if title != nil {
		if _, err := entity.NormalizeTitle(*title); err != nil {
			return nil, err
		}
	}
	if content != nil {
		if _, err := entity.NormalizeContent(*content); err != nil {
			return nil, err
		}
	}

	unlock := s.Locker.LockTenant(p.TenantSlug)
	n, err := s.load(ctx, p, id, "update")
	if err != nil {
		unlock()
		return nil, err
	}
	if err := n.Apply(title, content, s.now().UTC()); err != nil {
		unlock()
		return nil, err
	}
	if title != nil {
		n.Title = s.escape(n.Title)
	}
	if content != nil {
		n.Content = s.escape(n.Content)
	}
	if err := s.Notes.Update(ctx, n); err != nil {
		unlock()
		return nil, s.mapNotFound(err)
	}
	unlock()

	s.log().WithFields(logrus.Fields{"tenant": n.TenantSlug, "note_id": n.ID, "user_id": p.UserID}).Info("note updated")
	s.emit(ctx, p, events.NoteUpdated, n, nil)
	return n, nil
}

// Delete removes a note of the principal's tenant.
func (s *NoteService) Delete(ctx context.Context, p *Principal, id string) error {
	if p == nil {
		return ErrAccessDenied
	}
	unlock := s.Locker.LockTenant(p.TenantSlug)
	n, err := s.load(ctx, p, id, "delete")
	if err != nil {
		unlock()
		return err
	}
	if err := s.Notes.Delete(ctx, n.ID); err != nil {
		unlock()
		return s.mapNotFound(err)
	}
	unlock()

	s.Metrics.NoteDeleted(n.TenantSlug)
	s.log().WithFields(logrus.Fields{"tenant": n.TenantSlug, "note_id": n.ID, "user_id": p.UserID}).Info("note deleted")
	s.emit(ctx, p, events.NoteDeleted, n, nil)
	return nil
}

// load fetches a note and runs the tenant check. Denials are logged and counted
// but surface as ErrNoteNotFound so callers cannot discover other tenants' ids.
func (s *NoteService) load(ctx context.Context, p *Principal, id, op string) (*entity.Note, error) {
	if p == nil {
		return nil, ErrAccessDenied
	}
	if id == "" {
		return nil, ErrNoteNotFound
	}
	n, err := s.Notes.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := AuthorizeTenantAccess(p, n.TenantSlug); err != nil {
		s.Metrics.Denied(p.TenantSlug, op)
		s.log().WithFields(logrus.Fields{
			"user_id":   p.UserID,
			"tenant":    p.TenantSlug,
			"note_id":   id,
			"operation": op,
		}).Warn("cross-tenant note access denied")
		return nil, ErrNoteNotFound
	}
	return n, nil
}

func (s *NoteService) tenantOf(ctx context.Context, p *Principal) (*entity.Tenant, error) {
	if p == nil || p.TenantSlug == "" {
		return nil, ErrAccessDenied
	}
	t, err := s.Tenants.GetBySlug(ctx, p.TenantSlug)
	if err != nil || !t.Active {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

func (s *NoteService) mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

func (s *NoteService) emit(ctx context.Context, p *Principal, typ events.Type, n *entity.Note, data map[string]any) {
	publish(ctx, s.Events, s.Logger, events.Event{
		Type:       typ,
		TenantSlug: n.TenantSlug,
		ActorID:    p.UserID,
		ActorEmail: p.Email,
		NoteID:     n.ID,
		OccurredAt: s.now().UTC(),
		Data:       data,
	})
}

func sortNotes(notes []*entity.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
