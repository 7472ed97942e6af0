package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	exportService services.ExportService
}

func NewCourseHandler(courseService services.CourseService, exportService services.ExportService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		exportService: exportService,
	}
}

// ListByCategory returns the catalog slice for one category.
func (h *CourseHandler) ListByCategory(c *gin.Context) {
	var req services.ListCoursesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.courseService.ListByCategory(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetDetail returns the full course projection.
func (h *CourseHandler) GetDetail(c *gin.Context) {
	courseID := c.Param("course_id")

	resp, err := h.courseService.GetDetail(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create inserts a course and its author link. Teacher role is enforced by
// the route middleware; the author named in the body must be the caller.
func (h *CourseHandler) Create(c *gin.Context) {
	var req services.CreateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Author) {
		return
	}

	h.LogRequest(c, "creating course", "name", req.Name, "author", req.Author)

	resp, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Enroll adds a learner link for the calling student.
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req services.EnrollCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.StudentUsername) {
		return
	}

	if err := h.courseService.Enroll(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// ListByUser returns the courses a user authors or attends.
func (h *CourseHandler) ListByUser(c *gin.Context) {
	username := c.Param("username")
	if !RequireActor(c, username) {
		return
	}

	courses, err := h.courseService.ListByUser(c.Request.Context(), username)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// UpdateBlock flips the block flag on a learner link.
func (h *CourseHandler) UpdateBlock(c *gin.Context) {
	courseID := c.Param("course_id")
	studentID := c.Param("student_id")

	var req services.UpdateBlockStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Username) {
		return
	}

	resp, err := h.courseService.UpdateBlock(c.Request.Context(), courseID, studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveStudent deletes a learner link.
func (h *CourseHandler) RemoveStudent(c *gin.Context) {
	courseID := c.Param("course_id")

	var req services.RemoveStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.AuthenticatedUsername) {
		return
	}

	if err := h.courseService.RemoveStudent(c.Request.Context(), courseID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddReview appends a feedback entry to a course.
func (h *CourseHandler) AddReview(c *gin.Context) {
	courseID := c.Param("course_id")

	var req services.AddReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !RequireActor(c, req.Username) {
		return
	}

	if err := h.courseService.AddReview(c.Request.Context(), courseID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// ExportRoster streams the enrolled-students spreadsheet.
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	courseID := c.Param("course_id")

	export, err := h.exportService.ExportRoster(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.Data)
}
