package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	repo "github.com/oksasatya/multitenant-notes/internal/domain/repository"
	"github.com/oksasatya/multitenant-notes/internal/metrics"
	"github.com/oksasatya/multitenant-notes/pkg/events"
)

// Usage is a tenant's note consumption against its plan. Limit and Remaining
// are entity.Unlimited on the pro plan.
type Usage struct {
	Allowed   bool
	Current   int
	Limit     int
	Remaining int
	Plan      entity.Plan
}

// CheckCreateAllowed decides whether a tenant holding current notes may create
// one more. A free tenant at or over its limit is refused.
func CheckCreateAllowed(t *entity.Tenant, current int) Usage {
	if t.IsUnlimited() {
		return Usage{
			Allowed:   true,
			Current:   current,
			Limit:     entity.Unlimited,
			Remaining: entity.Unlimited,
			Plan:      t.Plan,
		}
	}
	remaining := t.NoteLimit - current
	if remaining < 0 {
		remaining = 0
	}
	return Usage{
		Allowed:   current < t.NoteLimit,
		Current:   current,
		Limit:     t.NoteLimit,
		Remaining: remaining,
		Plan:      t.Plan,
	}
}

// EntitlementService owns plan changes.
type EntitlementService struct {
	Tenants repo.TenantRepository
	Locker  repo.TenantLocker
	Events  EventPublisher
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func NewEntitlementService(tenants repo.TenantRepository, locker repo.TenantLocker, pub EventPublisher, logger *logrus.Logger, m *metrics.Metrics) *EntitlementService {
	return &EntitlementService{
		Tenants: tenants,
		Locker:  locker,
		Events:  pub,
		Logger:  logger,
		Metrics: m,
		Now:     time.Now,
	}
}

func (s *EntitlementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *EntitlementService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// Upgrade moves the principal's own tenant to the pro plan. Checks run in
// order: admin role, same tenant, tenant exists and is active, not already pro.
// The change is permanent.
func (s *EntitlementService) Upgrade(ctx context.Context, p *Principal, slug string) (*entity.Tenant, error) {
	if err := RequireRole(p, entity.RoleAdmin); err != nil {
		s.denied(p, slug, "upgrade_role")
		return nil, err
	}
	if err := AuthorizeTenantAccess(p, slug); err != nil {
		s.denied(p, slug, "upgrade_cross_tenant")
		return nil, ErrCrossTenantUpgrade
	}

	unlock := s.Locker.LockTenant(slug)
	t, err := s.Tenants.GetBySlug(ctx, slug)
	if err != nil || !t.Active {
		unlock()
		return nil, ErrTenantNotFound
	}
	if !t.UpgradeToPro(s.now().UTC()) {
		unlock()
		return nil, ErrAlreadyPro
	}
	if err := s.Tenants.Update(ctx, t); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	s.Metrics.Upgraded(t.Slug)
	s.log().WithFields(logrus.Fields{"tenant": t.Slug, "user_id": p.UserID}).Info("tenant upgraded to pro")

	publish(ctx, s.Events, s.Logger, events.Event{
		Type:       events.TenantUpgraded,
		TenantSlug: t.Slug,
		ActorID:    p.UserID,
		ActorEmail: p.Email,
		OccurredAt: *t.UpgradedAt,
		Data: map[string]any{
			"plan":       t.Plan.String(),
			"tenantName": t.Name,
		},
	})
	return t, nil
}

func (s *EntitlementService) denied(p *Principal, slug, op string) {
	fields := logrus.Fields{"target_tenant": slug, "operation": op}
	tenant := ""
	if p != nil {
		tenant = p.TenantSlug
		fields["user_id"] = p.UserID
		fields["tenant"] = p.TenantSlug
	}
	s.Metrics.Denied(tenant, op)
	s.log().WithFields(fields).Warn("upgrade denied")
}
