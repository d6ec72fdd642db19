package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	reportService "github.com/Okojas/MediCare-doctor-appointment/internal/service/report"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *reportService.Service
}

func NewHandler(service *reportService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStats(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	stats, err := h.service.AdminStats(c.Request.Context(), identity)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, stats)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.GET("/stats", h.GetStats)
	}
}
