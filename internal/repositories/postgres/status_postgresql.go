package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
)

type statusRepository struct {
	db *gorm.DB
}

func NewStatusPostgreSQL(db *gorm.DB) repositories.StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return fmt.Errorf("create status: %w", err)
	}
	return nil
}

func (r *statusRepository) GetByUsername(ctx context.Context, username string) (models.PresenceStatus, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = statuses.user_id").
		Where("users.username = ?", username).
		First(&status).Error; err != nil {
		return "", err
	}
	return status.Status, nil
}

func (r *statusRepository) UpdateByUsername(ctx context.Context, username string, status models.PresenceStatus) error {
	userIDs := r.db.Model(&models.User{}).
		Select("id").
		Where("username = ?", username)

	result := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("user_id IN (?)", userIDs).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
