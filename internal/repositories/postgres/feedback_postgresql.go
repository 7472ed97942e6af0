package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackPostgreSQL(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.StudentFeedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.StudentFeedback, error) {
	var feedback []*models.StudentFeedback
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedback, nil
}
