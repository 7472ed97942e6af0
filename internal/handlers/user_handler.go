package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

type UserHandler struct {
	BaseHandler
	userService   services.UserService
	statusService services.StatusService
}

func NewUserHandler(userService services.UserService, statusService services.StatusService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		statusService: statusService,
	}
}

// Register creates the identity, role, interests and default presence.
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "registering user", "username", req.Username)

	resp, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListDirectory returns every identity except the administrative account,
// sorted by full name. The caller must be acting as themselves.
func (h *UserHandler) ListDirectory(c *gin.Context) {
	var req validator.ListUsersRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Username) {
		return
	}

	directory, err := h.userService.ListDirectory(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, directory)
}

// GetProfile returns the public profile of a user.
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.userService.GetProfile(c.Request.Context(), username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetStatus returns the presence value for the authenticated user.
func (h *UserHandler) GetStatus(c *gin.Context) {
	var req validator.GetStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Username) {
		return
	}

	status, err := h.statusService.Get(c.Request.Context(), req.Username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// UpdateStatus sets the presence value and reports the transition.
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Username) {
		return
	}

	resp, err := h.statusService.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
