package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count courses by id: %w", err)
	}
	return count > 0, nil
}

func (r *courseRepository) ListByCategory(ctx context.Context, category models.CourseCategory, limit int) ([]*models.Course, error) {
	var courses []*models.Course

	query := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses by category: %w", err)
	}
	return courses, nil
}
