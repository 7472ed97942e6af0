package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// BaseHandler carries the pieces every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append([]any{"error", err}, args...)...)
}

// handleServiceError maps service errors onto the HTTP taxonomy: field
// errors and integrity breaches are 400, identity and role failures are 401,
// anything unrecognized is a 500 carrying the raw error detail.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs utils.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAuthenticationFailed),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrActorMismatch),
		errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrMaterialNotFound),
		errors.Is(err, services.ErrNoAttachment):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})

	default:
		h.LogError(c, "request failed", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Details: err.Error(),
		})
	}
}

// bindJSON decodes the request body, replying 400 on malformed payloads.
func (h *BaseHandler) bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}
