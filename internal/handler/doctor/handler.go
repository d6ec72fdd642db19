package doctor

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/service/directory"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	var filter model.DoctorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	doctors, total, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"doctors": doctors, "total": total})
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid doctor ID"))
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
	}
}
