package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPrincipalNotFound  = errors.New("principal not found or inactive")
	ErrTenantNotFound     = errors.New("tenant not found or inactive")
	ErrTenantMismatch     = errors.New("user does not belong to the asserted tenant")
)

// Authorization errors.
var (
	ErrAccessDenied            = errors.New("access denied")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// Entitlement and resource errors.
var (
	ErrCrossTenantUpgrade = errors.New("tenant can only be upgraded by its own admin")
	ErrAlreadyPro         = errors.New("tenant is already on the pro plan")
	ErrLimitExceeded      = errors.New("note limit reached for plan")
	ErrNoteNotFound       = errors.New("note not found")
)

// LimitError carries the usage snapshot that caused a create to be refused.
type LimitError struct {
	Usage Usage
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d of %d notes on %s plan", ErrLimitExceeded, e.Usage.Current, e.Usage.Limit, e.Usage.Plan)
}

func (e *LimitError) Unwrap() error { return ErrLimitExceeded }

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) (*entity.ValidationError, bool) {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
