package repositories

import (
	"context"

	"github.com/skilldeck/learning-platform/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateRole(ctx context.Context, role *models.Role) error
	CreateInterests(ctx context.Context, interests []models.Interest) error

	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByUsernameWithProfile preloads Role, Status and Interests.
	GetByUsernameWithProfile(ctx context.Context, username string) (*models.User, error)
	GetRole(ctx context.Context, username string) (models.UserRole, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// List returns every identity with its Role preloaded.
	List(ctx context.Context) ([]*models.User, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// ListByCategory returns courses ordered by creation time; limit <= 0
	// means no limit.
	ListByCategory(ctx context.Context, category models.CourseCategory, limit int) ([]*models.Course, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, tracker *models.CourseTracker) error

	// GetAuthor returns the single author link of a course, user preloaded.
	GetAuthor(ctx context.Context, courseID string) (*models.CourseTracker, error)
	// ListLearners returns every learner link of a course, users preloaded.
	ListLearners(ctx context.Context, courseID string) ([]*models.CourseTracker, error)
	// ListByUser returns a user's links with the given profile, courses
	// preloaded, most recent first; limit <= 0 means no limit.
	ListByUser(ctx context.Context, username string, profile models.TrackerProfile, limit int) ([]*models.CourseTracker, error)

	// UpdateBlock flips the block flag on the matching learner link. A
	// missing link is a silent no-op.
	UpdateBlock(ctx context.Context, courseID, studentID string, blocked bool) error
	DeleteLearner(ctx context.Context, courseID, studentUsername string) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.StudentFeedback) error
	// ListByCourse returns feedback in creation order, students preloaded.
	ListByCourse(ctx context.Context, courseID string) ([]*models.StudentFeedback, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, material *models.CourseMaterial) error
	GetByID(ctx context.Context, id string) (*models.CourseMaterial, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.CourseMaterial, error)
}

type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByUsername(ctx context.Context, username string) (models.PresenceStatus, error)
	UpdateByUsername(ctx context.Context, username string, status models.PresenceStatus) error
}
