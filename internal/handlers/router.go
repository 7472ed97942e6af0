package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/services"
	"github.com/skilldeck/learning-platform/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	userHandler     *UserHandler
	courseHandler   *CourseHandler
	materialHandler *MaterialHandler
	authMiddleware  *JWTAuthMiddleware
	repo            repositories.Repository
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:     NewUserHandler(serviceManager.User(), serviceManager.Status(), logger),
		courseHandler:   NewCourseHandler(serviceManager.Course(), serviceManager.Export(), logger),
		materialHandler: NewMaterialHandler(serviceManager.Material(), logger),
		authMiddleware:  NewJWTAuthMiddleware(serviceManager.Auth()),
		repo:            repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")

	// Public endpoints
	api.POST("/user/register/", hm.userHandler.Register)
	api.POST("/token/", hm.authHandler.ObtainToken)
	api.POST("/token/refresh/", hm.authHandler.RefreshToken)
	api.POST("/courses/list-three-by-category", hm.courseHandler.ListByCategory)
	api.GET("/courses/:course_id", hm.courseHandler.GetDetail)
	api.GET("/users/:username", hm.userHandler.GetProfile)

	// Protected endpoints: bearer token required, handlers additionally
	// verify the token identity against the claimed actor.
	authed := api.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.POST("/users/course/author",
			hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher),
			hm.courseHandler.Create)
		authed.POST("/users/course/enroll", hm.courseHandler.Enroll)
		authed.GET("/users/courses/:username", hm.courseHandler.ListByUser)

		authed.POST("/courses/:course_id/review", hm.courseHandler.AddReview)
		authed.DELETE("/courses/:course_id/student", hm.courseHandler.RemoveStudent)
		authed.PATCH("/courses/:course_id/student/:student_id", hm.courseHandler.UpdateBlock)
		authed.GET("/courses/:course_id/roster/export",
			hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher),
			hm.courseHandler.ExportRoster)

		authed.POST("/courses/:course_id/course-material", hm.materialHandler.Add)
		authed.POST("/courses/materials/download", hm.materialHandler.Download)

		authed.POST("/users/status", hm.userHandler.GetStatus)
		authed.PATCH("/users/status", hm.userHandler.UpdateStatus)
		authed.POST("/users", hm.userHandler.ListDirectory)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "learning-platform",
	}

	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	c.JSON(status, health)
}
