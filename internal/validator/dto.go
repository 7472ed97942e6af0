package validator

import (
	"github.com/skilldeck/learning-platform/internal/models"
)

// RegisterUserRequest is the registration payload. Interests only apply to
// student registrations.
type RegisterUserRequest struct {
	Username  string            `json:"username" validate:"required,max=150"`
	FirstName string            `json:"first_name" validate:"required,max=150"`
	LastName  string            `json:"last_name" validate:"required,max=150"`
	Email     string            `json:"email" validate:"required,email"`
	Role      models.UserRole   `json:"role" validate:"required,user_role"`
	Password  string            `json:"password" validate:"required,min=8"`
	Interests []InterestRequest `json:"interest" validate:"omitempty,dive"`
}

type InterestRequest struct {
	Interest string `json:"interest" validate:"required,interest_tag"`
}

type ObtainTokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ListCoursesRequest filters the catalog by category with an optional
// positive row limit.
type ListCoursesRequest struct {
	Category models.CourseCategory `json:"category" validate:"required,course_category"`
	Limit    *int                  `json:"limit" validate:"omitempty,gt=0"`
}

type CreateCourseRequest struct {
	Name        string                `json:"name" validate:"required,max=250"`
	Category    models.CourseCategory `json:"category" validate:"required,course_category"`
	Subcategory string                `json:"subcategory" validate:"required,max=250"`
	Description string                `json:"description" validate:"required"`
	Author      string                `json:"author" validate:"required"`
}

type EnrollCourseRequest struct {
	CourseID        string `json:"courseId" validate:"required"`
	StudentUsername string `json:"studentUsername" validate:"required"`
}

type UpdateBlockStatusRequest struct {
	Username  string `json:"username" validate:"required"`
	IsBlocked *bool  `json:"isBlocked" validate:"required"`
}

type RemoveStudentRequest struct {
	AuthenticatedUsername string `json:"authenticatedUsername" validate:"required"`
	StudentUsername       string `json:"studentUsername" validate:"required"`
}

type AddReviewRequest struct {
	Username string `json:"username" validate:"required"`
	Review   string `json:"review" validate:"required"`
}

type AddMaterialRequest struct {
	AuthenticatedUsername string `json:"authenticatedUsername" validate:"required"`
	Title                 string `json:"title" validate:"required,max=250"`
	Content               string `json:"content" validate:"required"`
	Duration              int    `json:"duration" validate:"required,gt=0"`
}

type DownloadMaterialRequest struct {
	AuthenticatedUsername string `json:"authenticatedUsername" validate:"required"`
	MaterialID            string `json:"materialId" validate:"required"`
}

type GetStatusRequest struct {
	Username string `json:"username" validate:"required"`
}

// UpdateStatusRequest validates the presence enum up front so a bad value is
// a 400 field error rather than a store-level constraint failure.
type UpdateStatusRequest struct {
	Username string                `json:"username" validate:"required"`
	Status   models.PresenceStatus `json:"status" validate:"required,presence_status"`
}

type ListUsersRequest struct {
	Username string `json:"username" validate:"required"`
}
