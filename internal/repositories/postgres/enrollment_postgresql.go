package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, tracker *models.CourseTracker) error {
	if err := r.db.WithContext(ctx).Create(tracker).Error; err != nil {
		return fmt.Errorf("create course tracker: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) GetAuthor(ctx context.Context, courseID string) (*models.CourseTracker, error) {
	var tracker models.CourseTracker
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ? AND profile = ?", courseID, models.ProfileAuthor).
		First(&tracker).Error; err != nil {
		return nil, err
	}
	return &tracker, nil
}

func (r *enrollmentRepository) ListLearners(ctx context.Context, courseID string) ([]*models.CourseTracker, error) {
	var trackers []*models.CourseTracker
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ? AND profile = ?", courseID, models.ProfileLearner).
		Order("created_at").
		Find(&trackers).Error; err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return trackers, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, username string, profile models.TrackerProfile, limit int) ([]*models.CourseTracker, error) {
	var trackers []*models.CourseTracker

	userIDs := r.db.Model(&models.User{}).
		Select("id").
		Where("username = ?", username)

	query := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id IN (?) AND profile = ?", userIDs, profile).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&trackers).Error; err != nil {
		return nil, fmt.Errorf("list trackers by user: %w", err)
	}
	return trackers, nil
}

func (r *enrollmentRepository) UpdateBlock(ctx context.Context, courseID, studentID string, blocked bool) error {
	// Matching zero rows is not an error, the block state just stays as is.
	if err := r.db.WithContext(ctx).
		Model(&models.CourseTracker{}).
		Where("course_id = ? AND user_id = ? AND profile = ?", courseID, studentID, models.ProfileLearner).
		Update("is_blocked", blocked).Error; err != nil {
		return fmt.Errorf("update block flag: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) DeleteLearner(ctx context.Context, courseID, studentUsername string) error {
	userIDs := r.db.Model(&models.User{}).
		Select("id").
		Where("username = ?", studentUsername)

	if err := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id IN (?) AND profile = ?", courseID, userIDs, models.ProfileLearner).
		Delete(&models.CourseTracker{}).Error; err != nil {
		return fmt.Errorf("delete learner: %w", err)
	}
	return nil
}
