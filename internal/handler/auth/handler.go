package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	authService "github.com/Okojas/MediCare-doctor-appointment/internal/service/auth"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *authService.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *authService.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, tokens)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, authService.ErrInvalidCredentials)
		return
	}

	view, err := h.service.Me(c.Request.Context(), identity.UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.auth.Authenticate(), h.Me)
	}
}
