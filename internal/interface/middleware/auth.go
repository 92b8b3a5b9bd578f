package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth requires an "Authorization: Bearer <token>" header, resolves it to a
// principal and stores it in the request context. It also sets userID in the
// Gin context for the rate limiter and access log.
func Auth(svc *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.CodeAuthRequired, "Authorization header with Bearer token is required", nil)
			return
		}

		p, err := svc.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, application.ErrInvalidToken):
			response.Abort(c, http.StatusUnauthorized, response.CodeInvalidToken, "Invalid or expired JWT token", nil)
			return
		case errors.Is(err, application.ErrPrincipalNotFound), errors.Is(err, application.ErrTenantNotFound):
			response.Abort(c, http.StatusUnauthorized, response.CodeUserOrTenant, "User or tenant not found or inactive", nil)
			return
		case errors.Is(err, application.ErrTenantMismatch):
			response.Abort(c, http.StatusForbidden, response.CodeTenantMismatch, "User does not belong to the specified tenant", nil)
			return
		default:
			response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred", nil)
			return
		}

		c.Request = c.Request.WithContext(application.WithPrincipal(c.Request.Context(), p))
		c.Set(CtxUserIDKey, p.UserID)
		c.Set("tenant", p.TenantSlug)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
