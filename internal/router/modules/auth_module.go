package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/internal/container"
	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
	"github.com/oksasatya/multitenant-notes/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	loginLimiter := middleware.RateLimit(container.GetRedis(), cfg.LoginRateLimit, cfg.RateLimitWindow, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
