package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/internal/application"
	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
	"github.com/oksasatya/multitenant-notes/internal/interface/middleware"
)

type TenantModule struct {
	Handler *handlers.TenantHandler
	Auth    *application.AuthService
}

func NewTenantModule(h *handlers.TenantHandler, auth *application.AuthService) *TenantModule {
	return &TenantModule{Handler: h, Auth: auth}
}

func (m *TenantModule) Register(rg *gin.RouterGroup) {
	rg.POST("/tenants/:slug/upgrade", middleware.Auth(m.Auth), m.Handler.Upgrade)
}
