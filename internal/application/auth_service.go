package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	repo "github.com/oksasatya/multitenant-notes/internal/domain/repository"
	"github.com/oksasatya/multitenant-notes/internal/metrics"
	"github.com/oksasatya/multitenant-notes/pkg/helpers"
)

// AuthService is the credential check at login and the token-to-principal
// resolution on every authenticated request.
type AuthService struct {
	Users   repo.UserRepository
	Tenants repo.TenantRepository
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func NewAuthService(users repo.UserRepository, tenants repo.TenantRepository, jwt *helpers.JWTManager, logger *logrus.Logger, m *metrics.Metrics) *AuthService {
	return &AuthService{
		Users:   users,
		Tenants: tenants,
		JWT:     jwt,
		Logger:  logger,
		Metrics: m,
		Now:     time.Now,
	}
}

type UserSummary struct {
	ID         string
	Email      string
	Name       string
	Role       entity.Role
	TenantSlug string
}

type TenantSummary struct {
	Slug      string
	Name      string
	Plan      entity.Plan
	NoteLimit int
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
	Tenant    TenantSummary
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// Login checks email and password and issues a new assertion. Unknown,
// inactive and wrong-password accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil || !u.Active {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			s.log().WithError(err).Error("lookup user for login failed")
		}
		s.Metrics.AuthFailure("invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.Metrics.AuthFailure("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	t, err := s.activeTenant(ctx, u.TenantSlug)
	if err != nil {
		s.Metrics.AuthFailure("tenant_not_found")
		return nil, err
	}

	token, claims, err := s.JWT.IssueAssertion(u.ID, u.Email, u.Role.String(), t.Slug)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("issue assertion failed")
		return nil, fmt.Errorf("issue assertion: %w", err)
	}

	now := s.now().UTC()
	u.LastLogin = &now
	if err := s.Users.Update(ctx, u); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("record last login failed")
	}

	s.Metrics.Login(t.Slug)
	s.log().WithFields(logrus.Fields{"user_id": u.ID, "tenant": t.Slug}).Info("login successful")

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: UserSummary{
			ID:         u.ID,
			Email:      u.Email,
			Name:       u.Name,
			Role:       u.Role,
			TenantSlug: u.TenantSlug,
		},
		Tenant: summarizeTenant(t),
	}, nil
}

// Authenticate verifies the presented assertion and resolves it to a principal.
// The user and tenant must still exist and be active, and the user must still
// belong to the tenant named in the assertion.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.JWT.VerifyAssertion(token)
	if err != nil {
		s.Metrics.AuthFailure(tokenFailureReason(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		s.Metrics.AuthFailure(tokenFailureReason(helpers.ErrTokenMalformed))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, helpers.ErrTokenMalformed)
	}

	u, err := s.Users.GetByID(ctx, claims.Subject)
	if err != nil || !u.Active {
		s.Metrics.AuthFailure("principal_not_found")
		return nil, ErrPrincipalNotFound
	}
	if _, err := s.activeTenant(ctx, claims.Tenant); err != nil {
		s.Metrics.AuthFailure("tenant_not_found")
		return nil, err
	}
	if u.TenantSlug != claims.Tenant {
		s.Metrics.AuthFailure("tenant_mismatch")
		s.log().WithFields(logrus.Fields{
			"user_id":      u.ID,
			"user_tenant":  u.TenantSlug,
			"claim_tenant": claims.Tenant,
		}).Warn("assertion tenant does not match user")
		return nil, ErrTenantMismatch
	}

	p := &Principal{
		UserID:     claims.Subject,
		Email:      claims.Email,
		Role:       role,
		TenantSlug: claims.Tenant,
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func (s *AuthService) activeTenant(ctx context.Context, slug string) (*entity.Tenant, error) {
	t, err := s.Tenants.GetBySlug(ctx, slug)
	if err != nil || !t.Active {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

func summarizeTenant(t *entity.Tenant) TenantSummary {
	return TenantSummary{Slug: t.Slug, Name: t.Name, Plan: t.Plan, NoteLimit: t.NoteLimit}
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, helpers.ErrTokenSignatureInvalid):
		return "token_signature_invalid"
	default:
		return "token_malformed"
	}
}
