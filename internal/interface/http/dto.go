package handlers

import (
	"time"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// updateNoteRequest uses pointers so an absent field is told apart from an empty one.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type noteURI struct {
	ID string `uri:"id" binding:"required"`
}

type tenantURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

type noteDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tenant    string    `json:"tenant"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteDTO(n *entity.Note) noteDTO {
	return noteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tenant:    n.TenantSlug,
		UserID:    n.AuthorID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type tenantDTO struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	Plan       string     `json:"plan"`
	NoteLimit  int        `json:"noteLimit"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpgradedAt *time.Time `json:"upgradedAt,omitempty"`
}

func toTenantDTO(t *entity.Tenant) tenantDTO {
	return tenantDTO{
		Slug:       t.Slug,
		Name:       t.Name,
		Plan:       t.Plan.String(),
		NoteLimit:  t.NoteLimit,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpgradedAt: t.UpgradedAt,
	}
}

type usageDTO struct {
	Current       int    `json:"current"`
	Limit         int    `json:"limit"`
	Remaining     int    `json:"remaining"`
	CanCreateMore bool   `json:"canCreateMore"`
	PlanType      string `json:"planType"`
}

func toUsageDTO(u application.Usage) usageDTO {
	return usageDTO{
		Current:       u.Current,
		Limit:         u.Limit,
		Remaining:     u.Remaining,
		CanCreateMore: u.Allowed,
		PlanType:      u.Plan.String(),
	}
}

type limitDTO struct {
	CurrentCount    int    `json:"currentCount"`
	Limit           int    `json:"limit"`
	Plan            string `json:"plan"`
	UpgradeRequired bool   `json:"upgradeRequired"`
}

type loginUserDTO struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
}

type loginTenantDTO struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Plan      string `json:"plan"`
	NoteLimit int    `json:"noteLimit"`
}

type loginDTO struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      loginUserDTO   `json:"user"`
	Tenant    loginTenantDTO `json:"tenant"`
}

func toLoginDTO(r *application.LoginResult) loginDTO {
	return loginDTO{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User: loginUserDTO{
			ID:     r.User.ID,
			Email:  r.User.Email,
			Name:   r.User.Name,
			Role:   r.User.Role.String(),
			Tenant: r.User.TenantSlug,
		},
		Tenant: loginTenantDTO{
			Slug:      r.Tenant.Slug,
			Name:      r.Tenant.Name,
			Plan:      r.Tenant.Plan.String(),
			NoteLimit: r.Tenant.NoteLimit,
		},
	}
}
