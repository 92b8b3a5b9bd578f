package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
	"github.com/oksasatya/multitenant-notes/pkg/response"
)

type TenantHandler struct {
	Svc    *application.EntitlementService
	Logger *logrus.Logger
}

func NewTenantHandler(svc *application.EntitlementService, logger *logrus.Logger) *TenantHandler {
	return &TenantHandler{Svc: svc, Logger: logger}
}

// Upgrade POST /tenants/:slug/upgrade (Admin only)
func (h *TenantHandler) Upgrade(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	// the role check comes before slug validation
	if err := application.RequireRole(p, entity.RoleAdmin); err != nil {
		fail(c, h.Logger, err)
		return
	}
	var uri tenantURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid tenant slug", err)
		return
	}
	t, err := h.Svc.Upgrade(c.Request.Context(), p, uri.Slug)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tenant": toTenantDTO(t)}, "Tenant upgraded to Pro plan successfully", nil)
}
