package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/storage"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

// materialSubdir is the media-root subdirectory material attachments land in.
const materialSubdir = "materials"

type materialService struct {
	repo      repositories.Repository
	store     *storage.LocalStore
	validator *validator.Validator
	logger    utils.Logger
}

func NewMaterialService(repo repositories.Repository, store *storage.LocalStore, v *validator.Validator, logger utils.Logger) MaterialService {
	return &materialService{
		repo:      repo,
		store:     store,
		validator: v,
		logger:    logger,
	}
}

func (s *materialService) Add(ctx context.Context, courseID string, req *AddMaterialRequest, file *multipart.FileHeader) (*MaterialCreatedResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	exists, err := s.repo.Course().ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	material := &models.CourseMaterial{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		Duration: req.Duration,
		CourseID: courseID,
	}

	if file != nil {
		relPath, err := s.store.Save(file, materialSubdir)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		material.Upload = relPath
	}

	if err := s.repo.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("material added", "course_id", courseID, "material_id", material.ID, "has_file", material.Upload != "")

	return &MaterialCreatedResponse{ID: material.ID}, nil
}

func (s *materialService) Download(ctx context.Context, req *DownloadMaterialRequest) (*DownloadResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	material, err := s.repo.Material().GetByID(ctx, req.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to load material: %w", err)
	}

	if material.Upload == "" {
		return nil, ErrNoAttachment
	}

	abs, err := s.store.Resolve(material.Upload)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attachment: %w", err)
	}

	return &DownloadResult{
		Path:        abs,
		FileName:    storage.FileName(material.Upload),
		ContentType: s.store.ContentType(material.Upload),
	}, nil
}
