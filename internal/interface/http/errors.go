package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/pkg/response"
	"github.com/oksasatya/multitenant-notes/pkg/validation"
)

func badRequest(c *gin.Context, message string, err error) {
	response.Error[any](c, http.StatusBadRequest, response.CodeValidation, message, validation.ToDetails(err))
}

// fail maps an application error onto its status and code. Anything it does
// not recognise is logged and answered with an opaque 500.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if verr, ok := application.IsValidation(err); ok {
		response.Error[any](c, http.StatusBadRequest, response.CodeValidation, "Invalid input data", map[string]string{verr.Field: verr.Constraint})
		return
	}
	var lerr *application.LimitError
	if errors.As(err, &lerr) {
		response.ErrorWithData(c, http.StatusForbidden, response.CodeNoteLimitExceeded, "Note limit reached for your subscription plan", limitDTO{
			CurrentCount:    lerr.Usage.Current,
			Limit:           lerr.Usage.Limit,
			Plan:            lerr.Usage.Plan.String(),
			UpgradeRequired: true,
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNoteNotFound):
		response.Error[any](c, http.StatusNotFound, response.CodeNoteNotFound, "Note not found or access denied", nil)
	case errors.Is(err, application.ErrInsufficientPermissions):
		response.Error[any](c, http.StatusForbidden, response.CodeInsufficientPerms, "Admin role required for this operation", nil)
	case errors.Is(err, application.ErrCrossTenantUpgrade):
		response.Error[any](c, http.StatusForbidden, response.CodeUnauthorizedTenant, "You can only upgrade your own tenant", nil)
	case errors.Is(err, application.ErrAccessDenied):
		response.Error[any](c, http.StatusForbidden, response.CodeUnauthorizedTenant, "Access denied", nil)
	case errors.Is(err, application.ErrTenantNotFound):
		response.Error[any](c, http.StatusNotFound, response.CodeTenantNotFound, "Tenant not found", nil)
	case errors.Is(err, application.ErrAlreadyPro):
		response.Error[any](c, http.StatusBadRequest, response.CodeAlreadyPro, "Tenant is already on Pro plan", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
	}
}

// principal returns the identity set by the auth middleware. Routes without it
// are a wiring error, so the request is refused rather than served anonymously.
func principal(c *gin.Context) (*application.Principal, bool) {
	p, ok := application.PrincipalFrom(c.Request.Context())
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, response.CodeAuthRequired, "Authorization header with Bearer token is required", nil)
	}
	return p, ok
}
