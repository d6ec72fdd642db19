package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Okojas/MediCare-doctor-appointment/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: "success", Data: data})
}

// RespondWithCreated sends a 201 success response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Status: "success", Data: data})
}

// RespondWithError maps an application error to its HTTP status and sends
// the standard error envelope.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch errors.KindOf(err) {
	case errors.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case errors.KindAuthorization:
		status = http.StatusForbidden
		message = err.Error()
	case errors.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case errors.KindStore, errors.KindInternal:
		// Internal detail stays out of the response body.
		_ = c.Error(err)
	}

	c.JSON(status, Response{Status: "error", Message: message})
}

// RespondWithValidationError sends a 400 for malformed request bodies.
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
}
