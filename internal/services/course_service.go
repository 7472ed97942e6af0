package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/events"
	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/storage"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, logger utils.Logger, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		logger:    logger,
		publisher: publisher,
	}
}

// Create inserts the course and its author tracker in one transaction.
func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*CourseCreatedResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	author, err := s.repo.User().GetByUsername(ctx, req.Author)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	course := &models.Course{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Course().Create(ctx, course); err != nil {
			return err
		}
		return tx.Enrollment().Create(ctx, &models.CourseTracker{
			ID:       uuid.NewString(),
			UserID:   author.ID,
			CourseID: course.ID,
			Profile:  models.ProfileAuthor,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("course created", "course_id", course.ID, "author", author.Username)

	if err := s.publisher.Publish(ctx, events.TopicCourseCreated, map[string]any{
		"course_id": course.ID,
		"name":      course.Name,
		"category":  course.Category,
		"author":    author.Username,
	}); err != nil {
		s.logger.Warn("failed to publish course event", "error", err)
	}

	return &CourseCreatedResponse{ID: course.ID}, nil
}

// Enroll appends a learner tracker. Repeated calls append additional links,
// no duplicate check is performed.
func (s *courseService) Enroll(ctx context.Context, req *EnrollCourseRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	exists, err := s.repo.Course().ExistsByID(ctx, req.CourseID)
	if err != nil {
		return fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return ErrCourseNotFound
	}

	student, err := s.repo.User().GetByUsername(ctx, req.StudentUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up student: %w", err)
	}

	if err := s.repo.Enrollment().Create(ctx, &models.CourseTracker{
		ID:       uuid.NewString(),
		UserID:   student.ID,
		CourseID: req.CourseID,
		Profile:  models.ProfileLearner,
	}); err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	s.logger.Info("student enrolled", "course_id", req.CourseID, "student", student.Username)

	if err := s.publisher.Publish(ctx, events.TopicCourseEnrolled, map[string]any{
		"course_id": req.CourseID,
		"student":   student.Username,
	}); err != nil {
		s.logger.Warn("failed to publish enrollment event", "error", err)
	}

	return nil
}

func (s *courseService) GetDetail(ctx context.Context, courseID string) (*CourseDetailResponse, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	resp := &CourseDetailResponse{
		ID:               course.ID,
		Name:             course.Name,
		Category:         course.Category,
		Subcategory:      course.Subcategory,
		Description:      course.Description,
		CreatedDate:      course.CreatedAt.Format(displayDateFormat),
		EnrolledStudents: []EnrolledStudentResponse{},
		Feedback:         []FeedbackResponse{},
		Materials:        []MaterialResponse{},
	}

	author, err := s.repo.Enrollment().GetAuthor(ctx, courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load course author: %w", err)
	}
	if author != nil {
		resp.Author = CourseAuthorResponse{
			ID:       author.User.ID,
			Username: author.User.Username,
			Name:     author.User.FullName(),
		}
	}

	learners, err := s.repo.Enrollment().ListLearners(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load learners: %w", err)
	}
	for _, learner := range learners {
		resp.EnrolledStudents = append(resp.EnrolledStudents, EnrolledStudentResponse{
			ID:           learner.User.ID,
			Username:     learner.User.Username,
			Name:         learner.User.FullName(),
			IsBlocked:    learner.IsBlocked,
			EnrolledDate: learner.CreatedAt.Format(displayDateFormat),
		})
	}

	feedback, err := s.repo.Feedback().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	for _, entry := range feedback {
		resp.Feedback = append(resp.Feedback, FeedbackResponse{
			Student:     entry.Student.FullName(),
			Feedback:    entry.Feedback,
			CreatedDate: entry.CreatedAt.Format(displayDateFormat),
		})
	}
	resp.FeedbackCount = len(feedback)

	materials, err := s.repo.Material().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	for _, material := range materials {
		entry := MaterialResponse{
			ID:       material.ID,
			Title:    material.Title,
			Content:  material.Content,
			Duration: material.Duration,
			HasFile:  material.Upload != "",
		}
		if entry.HasFile {
			entry.FileName = storage.FileName(material.Upload)
		}
		resp.Materials = append(resp.Materials, entry)
	}

	return resp, nil
}

func (s *courseService) ListByCategory(ctx context.Context, req *ListCoursesRequest) (*CategoryCoursesResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	courses, err := s.repo.Course().ListByCategory(ctx, req.Category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	resp := &CategoryCoursesResponse{
		Category: req.Category,
		Courses:  []CourseSummary{},
	}
	for _, course := range courses {
		summary := CourseSummary{
			Name:        course.Name,
			Subcategory: course.Subcategory,
			ID:          course.ID,
		}
		author, err := s.repo.Enrollment().GetAuthor(ctx, course.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load course author: %w", err)
		}
		if author != nil {
			summary.Author = author.User.FullName()
		}
		resp.Courses = append(resp.Courses, summary)
	}

	return resp, nil
}

// ListByUser returns the courses a user authors (teacher) or is enrolled in
// (student).
func (s *courseService) ListByUser(ctx context.Context, username string) ([]UserCourseResponse, error) {
	user, err := s.repo.User().GetByUsernameWithProfile(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profile := models.ProfileLearner
	if user.Role != nil && user.Role.Role == models.RoleTeacher {
		profile = models.ProfileAuthor
	}

	trackers, err := s.repo.Enrollment().ListByUser(ctx, username, profile, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list user courses: %w", err)
	}

	courses := make([]UserCourseResponse, 0, len(trackers))
	for _, tracker := range trackers {
		entry := UserCourseResponse{
			ID:           tracker.Course.ID,
			Name:         tracker.Course.Name,
			Category:     tracker.Course.Category,
			Subcategory:  tracker.Course.Subcategory,
			IsBlocked:    tracker.IsBlocked,
			EnrolledDate: tracker.CreatedAt.Format(displayDateFormat),
		}
		if profile == models.ProfileAuthor {
			entry.Author = user.FullName()
		} else {
			author, err := s.repo.Enrollment().GetAuthor(ctx, tracker.CourseID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load course author: %w", err)
			}
			if author != nil {
				entry.Author = author.User.FullName()
			}
		}
		courses = append(courses, entry)
	}

	return courses, nil
}

// UpdateBlock flips the block flag on a learner link. A missing link changes
// nothing and still reports success.
func (s *courseService) UpdateBlock(ctx context.Context, courseID, studentID string, req *UpdateBlockStatusRequest) (*BlockStatusResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if err := s.repo.Enrollment().UpdateBlock(ctx, courseID, studentID, *req.IsBlocked); err != nil {
		return nil, fmt.Errorf("failed to update block flag: %w", err)
	}

	s.logger.Info("block flag updated", "course_id", courseID, "student_id", studentID, "is_blocked", *req.IsBlocked)

	return &BlockStatusResponse{
		ID:        studentID,
		Username:  req.Username,
		IsBlocked: *req.IsBlocked,
	}, nil
}

func (s *courseService) RemoveStudent(ctx context.Context, courseID string, req *RemoveStudentRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	if err := s.repo.Enrollment().DeleteLearner(ctx, courseID, req.StudentUsername); err != nil {
		return fmt.Errorf("failed to remove student: %w", err)
	}

	s.logger.Info("student removed", "course_id", courseID, "student", req.StudentUsername)
	return nil
}

func (s *courseService) AddReview(ctx context.Context, courseID string, req *AddReviewRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	exists, err := s.repo.Course().ExistsByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return ErrCourseNotFound
	}

	student, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up student: %w", err)
	}

	if err := s.repo.Feedback().Create(ctx, &models.StudentFeedback{
		ID:        uuid.NewString(),
		StudentID: student.ID,
		CourseID:  courseID,
		Feedback:  req.Review,
	}); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}

	return nil
}
