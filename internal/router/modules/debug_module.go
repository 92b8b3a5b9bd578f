package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/multitenant-notes/internal/container"
	"github.com/oksasatya/multitenant-notes/internal/interface/middleware"
	"github.com/oksasatya/multitenant-notes/internal/metrics"
)

type DebugModule struct {
	Metrics *metrics.Metrics
}

func NewDebugModule(m *metrics.Metrics) *DebugModule { return &DebugModule{Metrics: m} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// rate-limited per IP; private networks (scrapers) bypass
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	if m.Metrics != nil {
		rg.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Metrics.Registry, promhttp.HandlerOpts{})))
	}
}
