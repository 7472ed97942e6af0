package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/events"
	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

// adminUsername is the administrative account excluded from the directory.
const adminUsername = "admin"

// profileCourseLimit caps the course relations shown on a public profile.
const profileCourseLimit = 4

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		logger:    logger,
		publisher: publisher,
	}
}

// Register creates the identity with its role, default-active presence and
// interests in a single transaction.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*RegisterResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if emailTaken {
		return nil, ErrDuplicateEmail
	}

	usernameTaken, err := s.repo.User().ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if usernameTaken {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
	}

	interests := make([]models.Interest, 0, len(req.Interests))
	for _, tag := range req.Interests {
		interests = append(interests, models.Interest{
			ID:       uuid.NewString(),
			Interest: tag.Interest,
			UserID:   user.ID,
		})
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}
		if err := tx.User().CreateRole(ctx, &models.Role{
			ID:     uuid.NewString(),
			Role:   req.Role,
			UserID: user.ID,
		}); err != nil {
			return err
		}
		if err := tx.Status().Create(ctx, &models.Status{
			ID:     uuid.NewString(),
			Status: models.StatusActive,
			UserID: user.ID,
		}); err != nil {
			return err
		}
		return tx.User().CreateInterests(ctx, interests)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "username", user.Username, "role", req.Role)

	if err := s.publisher.Publish(ctx, events.TopicUserRegistered, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     req.Role,
	}); err != nil {
		s.logger.Warn("failed to publish registration event", "error", err)
	}

	resp := &RegisterResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      req.Role,
	}
	for _, i := range interests {
		resp.Interests = append(resp.Interests, i.Interest)
	}
	return resp, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	user, err := s.repo.User().GetByUsernameWithProfile(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	resp := &ProfileResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Interests: []string{},
		Courses:   []ProfileCourseResponse{},
	}
	if user.Status != nil {
		resp.Status = user.Status.Status
	}
	if user.Role != nil {
		resp.Role = user.Role.Role
	}
	for _, interest := range user.Interests {
		resp.Interests = append(resp.Interests, interest.Interest)
	}

	// Teachers show their latest authored courses, students their latest
	// enrollments.
	profile := models.ProfileLearner
	if resp.Role == models.RoleTeacher {
		profile = models.ProfileAuthor
	}
	trackers, err := s.repo.Enrollment().ListByUser(ctx, username, profile, profileCourseLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile courses: %w", err)
	}

	// Most recent fetched first, presented oldest first.
	sort.Slice(trackers, func(i, j int) bool {
		return trackers[i].CreatedAt.Before(trackers[j].CreatedAt)
	})

	for _, tracker := range trackers {
		authorName := user.FullName()
		if profile == models.ProfileLearner {
			author, err := s.repo.Enrollment().GetAuthor(ctx, tracker.CourseID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("failed to load course author: %w", err)
				}
				authorName = ""
			} else {
				authorName = author.User.FullName()
			}
		}
		resp.Courses = append(resp.Courses, ProfileCourseResponse{
			ID:           tracker.Course.ID,
			Name:         tracker.Course.Name,
			Author:       authorName,
			EnrolledDate: tracker.CreatedAt.Format(displayDateFormat),
		})
	}

	return resp, nil
}

func (s *userService) ListDirectory(ctx context.Context) ([]DirectoryUserResponse, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	directory := make([]DirectoryUserResponse, 0, len(users))
	for _, user := range users {
		if user.Username == adminUsername {
			continue
		}
		entry := DirectoryUserResponse{
			Username: user.Username,
			Name:     user.FullName(),
		}
		if user.Role != nil {
			entry.Role = user.Role.Role
		}
		directory = append(directory, entry)
	}

	sort.Slice(directory, func(i, j int) bool {
		return directory[i].Name < directory[j].Name
	})

	return directory, nil
}
