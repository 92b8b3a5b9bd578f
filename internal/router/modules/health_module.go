package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
)

type HealthModule struct {
	AppName string
}

func NewHealthModule(appName string) *HealthModule { return &HealthModule{AppName: appName} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", handlers.Health)
	rg.GET("/", handlers.Index(m.AppName))
}
