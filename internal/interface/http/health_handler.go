package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/multitenant-notes/pkg/response"
)

// Endpoints is the public route list served by Index and the 404 handler.
var Endpoints = []string{
	"GET /health",
	"POST /auth/login",
	"GET /notes",
	"POST /notes",
	"GET /notes/:id",
	"PUT /notes/:id",
	"DELETE /notes/:id",
	"POST /tenants/:slug/upgrade",
}

// Health GET /health. The body is exactly {"status":"ok"} for load balancers.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index GET /
func Index(appName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"name": appName, "endpoints": Endpoints}, "ok", nil)
	}
}

// NotFound answers unknown routes with the endpoint list.
func NotFound(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, response.CodeEndpointNotFound,
		"Endpoint "+c.Request.Method+" "+c.Request.URL.Path+" not found",
		gin.H{"availableEndpoints": Endpoints})
}
