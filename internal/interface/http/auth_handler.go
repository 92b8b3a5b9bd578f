package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Login POST /auth/login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		badRequest(c, "Invalid input data", err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Invalid input data", err)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password", nil)
		return
	case errors.Is(err, application.ErrTenantNotFound):
		response.Error[any](c, http.StatusUnauthorized, response.CodeTenantNotFound, "Tenant not found or inactive", nil)
		return
	default:
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toLoginDTO(res), "Login successful", nil)
}
