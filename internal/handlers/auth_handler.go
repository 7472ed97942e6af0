package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// ObtainToken issues an access/refresh pair for valid credentials.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req services.ObtainTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.ObtainPair(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken reissues an access token from a refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
