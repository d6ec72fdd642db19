package record

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	recordService "github.com/Okojas/MediCare-doctor-appointment/internal/service/record"
	apperrors "github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/httputil"
)

type Handler struct {
	service *recordService.Service
}

func NewHandler(service *recordService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListRecords(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	records, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"records": records})
}

func (h *Handler) UploadRecord(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("file is required"))
		return
	}

	params := recordService.UploadParams{
		Title: c.PostForm("title"),
		Type:  model.RecordType(c.DefaultPostForm("type", string(model.RecordTypeOther))),
	}
	if notes := c.PostForm("notes"); notes != "" {
		params.Notes = &notes
	}
	if raw := c.PostForm("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("invalid doctor ID"))
			return
		}
		params.DoctorID = &id
	}
	if raw := c.PostForm("appointment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("invalid appointment ID"))
			return
		}
		params.AppointmentID = &id
	}

	rec, err := h.service.Upload(c.Request.Context(), identity, file, params)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, gin.H{"record": rec})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/medical-records")
	{
		records.GET("", h.ListRecords)
		records.POST("", h.UploadRecord)
	}
}
