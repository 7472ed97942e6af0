package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
)

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*models.CourseMaterial, error) {
	var material models.CourseMaterial
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.CourseMaterial, error) {
	var materials []*models.CourseMaterial
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}
