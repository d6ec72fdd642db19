package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	paymentService "github.com/Okojas/MediCare-doctor-appointment/internal/service/payment"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *paymentService.Service
}

func NewHandler(service *paymentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), identity, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, order)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Verify(c.Request.Context(), identity, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"success": true, "appointment": apt})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("/create-order", h.CreateOrder)
		payments.POST("/verify", h.VerifyPayment)
	}
}
