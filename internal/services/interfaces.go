package services

import (
	"context"
	"mime/multipart"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/validator"
)

// displayDateFormat is the human date form used across response payloads,
// e.g. "Sep 03, 2026".
const displayDateFormat = "Jan 02, 2006"

// ===== REQUEST DTOs (validated types from the validator package) =====

type RegisterUserRequest = validator.RegisterUserRequest
type ObtainTokenRequest = validator.ObtainTokenRequest
type RefreshTokenRequest = validator.RefreshTokenRequest
type ListCoursesRequest = validator.ListCoursesRequest
type CreateCourseRequest = validator.CreateCourseRequest
type EnrollCourseRequest = validator.EnrollCourseRequest
type UpdateBlockStatusRequest = validator.UpdateBlockStatusRequest
type RemoveStudentRequest = validator.RemoveStudentRequest
type AddReviewRequest = validator.AddReviewRequest
type AddMaterialRequest = validator.AddMaterialRequest
type DownloadMaterialRequest = validator.DownloadMaterialRequest
type UpdateStatusRequest = validator.UpdateStatusRequest

// ===== RESPONSE DTOs =====

type TokenPairResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type RegisterResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Interests []string        `json:"interest,omitempty"`
}

type CourseSummary struct {
	Name        string `json:"name"`
	Subcategory string `json:"subcategory"`
	Author      string `json:"author"`
	ID          string `json:"id"`
}

type CategoryCoursesResponse struct {
	Category models.CourseCategory `json:"category"`
	Courses  []CourseSummary       `json:"courses"`
}

type CourseAuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type EnrolledStudentResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	IsBlocked    bool   `json:"is_blocked"`
	EnrolledDate string `json:"enrolled_date"`
}

type FeedbackResponse struct {
	Student     string `json:"student"`
	Feedback    string `json:"feedback"`
	CreatedDate string `json:"created_date"`
}

type MaterialResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Duration int    `json:"duration"`
	HasFile  bool   `json:"hasFile"`
	FileName string `json:"fileName,omitempty"`
}

type CourseDetailResponse struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Category         models.CourseCategory     `json:"category"`
	Subcategory      string                    `json:"subcategory"`
	Description      string                    `json:"description"`
	CreatedDate      string                    `json:"created_date"`
	Author           CourseAuthorResponse      `json:"author"`
	EnrolledStudents []EnrolledStudentResponse `json:"enrolled_student"`
	FeedbackCount    int                       `json:"feedback_count"`
	Feedback         []FeedbackResponse        `json:"feedback"`
	Materials        []MaterialResponse        `json:"course_material"`
}

type CourseCreatedResponse struct {
	ID string `json:"id"`
}

type BlockStatusResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IsBlocked bool   `json:"isBlocked"`
}

type UserCourseResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Category     models.CourseCategory `json:"category"`
	Subcategory  string                `json:"subcategory"`
	Author       string                `json:"author"`
	IsBlocked    bool                  `json:"is_blocked"`
	EnrolledDate string                `json:"enrolled_date"`
}

type DirectoryUserResponse struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
}

type ProfileCourseResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Author       string `json:"author"`
	EnrolledDate string `json:"enrolled_date"`
}

type ProfileResponse struct {
	FirstName string                  `json:"firstname"`
	LastName  string                  `json:"lastname"`
	Status    models.PresenceStatus   `json:"status"`
	Role      models.UserRole         `json:"role"`
	Interests []string                `json:"interests"`
	Courses   []ProfileCourseResponse `json:"courses"`
}

type StatusResponse struct {
	Status models.PresenceStatus `json:"status"`
}

type UpdateStatusResponse struct {
	Username       string                `json:"username"`
	ExistingStatus models.PresenceStatus `json:"existing_status"`
	NewStatus      models.PresenceStatus `json:"new_status"`
}

type MaterialCreatedResponse struct {
	ID string `json:"id"`
}

// DownloadResult points at a stored attachment ready to be streamed.
type DownloadResult struct {
	Path        string
	FileName    string
	ContentType string
}

// RosterExport is a rendered spreadsheet of a course's enrolled students.
type RosterExport struct {
	FileName string
	Data     []byte
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	ObtainPair(ctx context.Context, req *ObtainTokenRequest) (*TokenPairResponse, error)
	Refresh(ctx context.Context, req *RefreshTokenRequest) (*RefreshResponse, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*RegisterResponse, error)
	GetProfile(ctx context.Context, username string) (*ProfileResponse, error)
	ListDirectory(ctx context.Context) ([]DirectoryUserResponse, error)
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest) (*CourseCreatedResponse, error)
	Enroll(ctx context.Context, req *EnrollCourseRequest) error
	GetDetail(ctx context.Context, courseID string) (*CourseDetailResponse, error)
	ListByCategory(ctx context.Context, req *ListCoursesRequest) (*CategoryCoursesResponse, error)
	ListByUser(ctx context.Context, username string) ([]UserCourseResponse, error)
	UpdateBlock(ctx context.Context, courseID, studentID string, req *UpdateBlockStatusRequest) (*BlockStatusResponse, error)
	RemoveStudent(ctx context.Context, courseID string, req *RemoveStudentRequest) error
	AddReview(ctx context.Context, courseID string, req *AddReviewRequest) error
}

type StatusService interface {
	Get(ctx context.Context, username string) (*StatusResponse, error)
	Update(ctx context.Context, req *UpdateStatusRequest) (*UpdateStatusResponse, error)
}

type MaterialService interface {
	Add(ctx context.Context, courseID string, req *AddMaterialRequest, file *multipart.FileHeader) (*MaterialCreatedResponse, error)
	Download(ctx context.Context, req *DownloadMaterialRequest) (*DownloadResult, error)
}

type ExportService interface {
	ExportRoster(ctx context.Context, courseID string) (*RosterExport, error)
}
