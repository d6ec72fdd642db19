package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	appointmentService "github.com/Okojas/MediCare-doctor-appointment/internal/service/appointment"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var status *model.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		s := model.AppointmentStatus(raw)
		status = &s
	}

	appointments, err := h.service.List(c.Request.Context(), identity, status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), identity, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

// GetConsultationToken authorizes a participant for a video consultation
// and hands out a mock session token; no signaling is implemented.
func (h *Handler) GetConsultationToken(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"appointment_id": apt.ID,
		"token":          uuid.New().String(),
	})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id/status", h.UpdateAppointmentStatus)
	}
	r.GET("/consultations/:id/token", h.GetConsultationToken)
}
