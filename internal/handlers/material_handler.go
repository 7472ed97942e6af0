package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
)

type MaterialHandler struct {
	BaseHandler
	materialService services.MaterialService
}

func NewMaterialHandler(materialService services.MaterialService, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     NewBaseHandler(logger),
		materialService: materialService,
	}
}

// Add creates a course material, with an optional file attachment when the
// request is multipart.
func (h *MaterialHandler) Add(c *gin.Context) {
	courseID := c.Param("course_id")

	req := services.AddMaterialRequest{
		AuthenticatedUsername: c.PostForm("authenticatedUsername"),
		Title:                 c.PostForm("title"),
		Content:               c.PostForm("content"),
	}
	if raw := c.PostForm("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: "duration must be an integer",
			})
			return
		}
		req.Duration = duration
	}

	if !RequireActor(c, req.AuthenticatedUsername) {
		return
	}

	// The attachment is optional.
	file, err := c.FormFile("upload")
	if err != nil {
		file = nil
	}

	h.LogRequest(c, "adding course material", "course_id", courseID, "has_file", file != nil)

	resp, err := h.materialService.Add(c.Request.Context(), courseID, &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Download streams a material's attachment with a guessed content type.
func (h *MaterialHandler) Download(c *gin.Context) {
	var req services.DownloadMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.AuthenticatedUsername) {
		return
	}

	result, err := h.materialService.Download(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", result.ContentType)
	c.FileAttachment(result.Path, result.FileName)
}
