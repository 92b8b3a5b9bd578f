package application

import (
	"context"
	"time"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// Principal is the authenticated identity derived from a verified assertion.
// Every authorization decision is made against it.
type Principal struct {
	UserID     string
	Email      string
	Role       entity.Role
	TenantSlug string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
