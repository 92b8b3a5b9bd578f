package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/internal/container"
	handlers "github.com/oksasatya/multitenant-notes/internal/interface/http"
	"github.com/oksasatya/multitenant-notes/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and every module
// wired from the container.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r := gin.New()
	if !cfg.TrustProxyHeaders {
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	r.Use(middleware.Metrics(container.GetMetrics()))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(cors.New(corsConfig(cfg.CORSOrigins())))

	reg := NewRegistry(r, cfg.APIPrefix)
	reg.Use(middleware.RateLimit(
		container.GetRedis(),
		cfg.APIRateLimit,
		cfg.RateLimitWindow,
		middleware.KeyByIP(),
		middleware.AllowPaths("/health"),
	))
	InitModules(reg)
	reg.RegisterAll()

	r.NoRoute(handlers.NotFound)
	r.HandleMethodNotAllowed = false
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
