package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/repositories/rediscache"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

type statusService struct {
	repo      repositories.Repository
	cache     *rediscache.PresenceCache
	validator *validator.Validator
	logger    utils.Logger
}

// NewStatusService builds the presence service. cache may be nil, in which
// case every read goes to the database.
func NewStatusService(repo repositories.Repository, cache *rediscache.PresenceCache, v *validator.Validator, logger utils.Logger) StatusService {
	return &statusService{
		repo:      repo,
		cache:     cache,
		validator: v,
		logger:    logger,
	}
}

func (s *statusService) Get(ctx context.Context, username string) (*StatusResponse, error) {
	if s.cache != nil {
		status, err := s.cache.Get(ctx, username)
		if err == nil {
			return &StatusResponse{Status: status}, nil
		}
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			s.logger.Warn("presence cache read failed", "username", username, "error", err)
		}
	}

	status, err := s.repo.Status().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load status: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, username, status); err != nil {
			s.logger.Warn("presence cache write failed", "username", username, "error", err)
		}
	}

	return &StatusResponse{Status: status}, nil
}

func (s *statusService) Update(ctx context.Context, req *UpdateStatusRequest) (*UpdateStatusResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	existing, err := s.repo.Status().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load status: %w", err)
	}

	if err := s.repo.Status().UpdateByUsername(ctx, req.Username, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, req.Username, req.Status); err != nil {
			s.logger.Warn("presence cache write failed", "username", req.Username, "error", err)
		}
	}

	s.logger.Info("status updated", "username", req.Username, "from", existing, "to", req.Status)

	return &UpdateStatusResponse{
		Username:       req.Username,
		ExistingStatus: existing,
		NewStatus:      req.Status,
	}, nil
}
