package entity

import (
	"fmt"
	"time"
)

// Plan is the entitlement tier of a tenant.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ParsePlan converts a wire value into a Plan, rejecting anything outside the closed set.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree:
		return PlanFree, nil
	case PlanPro:
		return PlanPro, nil
	default:
		return "", fmt.Errorf("unknown plan %q", s)
	}
}

func (p Plan) String() string { return string(p) }

const (
	// Unlimited is the NoteLimit sentinel carried by pro tenants.
	Unlimited = -1
	// FreeNoteLimit is the note allowance of a free tenant.
	FreeNoteLimit = 3
)

// Tenant is an isolated customer organization.
// Invariant: Plan == PlanPro if and only if NoteLimit == Unlimited.
type Tenant struct {
	Slug       string
	Name       string
	Plan       Plan
	NoteLimit  int
	Active     bool
	CreatedAt  time.Time
	UpgradedAt *time.Time
}

// NewFreeTenant returns an active tenant on the free plan.
func NewFreeTenant(slug, name string, now time.Time) *Tenant {
	return &Tenant{
		Slug:      slug,
		Name:      name,
		Plan:      PlanFree,
		NoteLimit: FreeNoteLimit,
		Active:    true,
		CreatedAt: now,
	}
}

// IsUnlimited reports whether the tenant may hold any number of notes.
func (t *Tenant) IsUnlimited() bool {
	switch t.Plan {
	case PlanPro:
		return true
	case PlanFree:
		return t.NoteLimit == Unlimited
	default:
		return false
	}
}

// UpgradeToPro moves the tenant to the pro plan. It returns false and leaves the
// tenant untouched when it is already pro; there is no way back to free.
func (t *Tenant) UpgradeToPro(now time.Time) bool {
	if t.Plan == PlanPro {
		return false
	}
	t.Plan = PlanPro
	t.NoteLimit = Unlimited
	at := now
	t.UpgradedAt = &at
	return true
}
