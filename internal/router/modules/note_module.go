package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/internal/container"
	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
	"github.com/oksasatya/multitenant-notes/internal/interface/middleware"
)

// NoteModule wires the tenant-scoped note CRUD. Every route requires a bearer token.
type NoteModule struct {
	Handler *handlers.NoteHandler
	Auth    *application.AuthService
}

func NewNoteModule(h *handlers.NoteHandler, auth *application.AuthService) *NoteModule {
	return &NoteModule{Handler: h, Auth: auth}
}

func (m *NoteModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	notes := rg.Group("/notes")
	notes.Use(middleware.Auth(m.Auth))
	notes.Use(middleware.RateLimit(container.GetRedis(), cfg.APIRateLimit, cfg.RateLimitWindow, middleware.KeyByUserID(), nil))
	{
		notes.GET("", m.Handler.List)
		notes.POST("", m.Handler.Create)
		notes.GET("/:id", m.Handler.Get)
		notes.PUT("/:id", m.Handler.Update)
		notes.DELETE("/:id", m.Handler.Delete)
	}
}
