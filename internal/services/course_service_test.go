package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts course and author tracker", func(t *testing.T) {
		repo := newTestRepo(t)
		userSvc := newUserService(repo)
		svc := newCourseService(repo)
		registerTestUser(t, userSvc, "teach", models.RoleTeacher)

		created, err := svc.Create(ctx, &CreateCourseRequest{
			Name:        "Go Fundamentals",
			Category:    models.CategoryDevelopment,
			Subcategory: "backend",
			Description: "desc",
			Author:      "teach",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		author, err := repo.Enrollment().GetAuthor(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected author tracker: %v", err)
		}
		if author.User.Username != "teach" || author.Profile != models.ProfileAuthor {
			t.Errorf("unexpected author tracker: %+v", author)
		}
	})

	t.Run("unknown author", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := newCourseService(repo)

		_, err := svc.Create(ctx, &CreateCourseRequest{
			Name:        "Orphan",
			Category:    models.CategoryBusiness,
			Subcategory: "misc",
			Description: "desc",
			Author:      "ghost",
		})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("invalid category is a field error", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := newCourseService(repo)

		_, err := svc.Create(ctx, &CreateCourseRequest{
			Name:        "Bad",
			Category:    models.CourseCategory("cooking"),
			Subcategory: "misc",
			Description: "desc",
			Author:      "teach",
		})

		var fieldErrs utils.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

// trackerFailRepo forces the author tracker insert to fail while the course
// insert still runs through the real transaction.
type trackerFailRepo struct {
	repositories.Repository
}

func (r trackerFailRepo) Enrollment() repositories.EnrollmentRepository {
	return failingEnrollment{}
}

func (r trackerFailRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.Repository.WithTransaction(ctx, func(tx repositories.Repository) error {
		return fn(trackerFailRepo{tx})
	})
}

type failingEnrollment struct {
	repositories.EnrollmentRepository
}

func (failingEnrollment) Create(context.Context, *models.CourseTracker) error {
	return errors.New("tracker insert rejected")
}

func TestCourseService_Create_Atomicity(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	registerTestUser(t, userSvc, "teach", models.RoleTeacher)

	svc := NewCourseService(trackerFailRepo{repo}, validator.New(), newTestLogger(), newTestPublisher())

	_, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Doomed",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err == nil {
		t.Fatal("expected create to fail")
	}

	// The course row must have been rolled back with the tracker.
	courses, err := repo.Course().ListByCategory(ctx, models.CategoryDevelopment, 0)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no course rows after rollback, got %d", len(courses))
	}
}

func TestCourseService_EnrollAndDetail(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)

	registerTestUser(t, userSvc, "teach", models.RoleTeacher)
	registerTestUser(t, userSvc, "study", models.RoleStudent)

	created, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Enroll(ctx, &EnrollCourseRequest{
		CourseID:        created.ID,
		StudentUsername: "study",
	}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	detail, err := svc.GetDetail(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if detail.Author.Username != "teach" {
		t.Errorf("unexpected author: %+v", detail.Author)
	}
	if len(detail.EnrolledStudents) != 1 {
		t.Fatalf("expected 1 enrolled student, got %d", len(detail.EnrolledStudents))
	}
	student := detail.EnrolledStudents[0]
	if student.Username != "study" || student.IsBlocked {
		t.Errorf("unexpected enrolled student: %+v", student)
	}
	if matched, _ := regexp.MatchString(`^[A-Z][a-z]{2} \d{2}, \d{4}$`, student.EnrolledDate); !matched {
		t.Errorf("enrollment date %q not in 'Jan 02, 2006' form", student.EnrolledDate)
	}

	// No duplicate check: a second enroll appends another link.
	if err := svc.Enroll(ctx, &EnrollCourseRequest{
		CourseID:        created.ID,
		StudentUsername: "study",
	}); err != nil {
		t.Fatalf("second Enroll failed: %v", err)
	}
	detail, err = svc.GetDetail(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if len(detail.EnrolledStudents) != 2 {
		t.Errorf("expected duplicate enrollment to append, got %d links", len(detail.EnrolledStudents))
	}
}

func TestCourseService_DetailListsMaterials(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)
	registerTestUser(t, userSvc, "teach", models.RoleTeacher)

	created, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Material().Create(ctx, &models.CourseMaterial{
		ID:       "m1",
		Title:    "Week 1 Notes",
		Content:  "intro",
		Upload:   "materials/3f2a_syllabus.pdf",
		Duration: 45,
		CourseID: created.ID,
	}); err != nil {
		t.Fatalf("Create material failed: %v", err)
	}
	if err := repo.Material().Create(ctx, &models.CourseMaterial{
		ID:       "m2",
		Title:    "Reading List",
		Content:  "books",
		Duration: 10,
		CourseID: created.ID,
	}); err != nil {
		t.Fatalf("Create material failed: %v", err)
	}

	detail, err := svc.GetDetail(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDetail failed with materials present: %v", err)
	}
	if len(detail.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(detail.Materials))
	}
	for _, material := range detail.Materials {
		switch material.ID {
		case "m1":
			if !material.HasFile || material.FileName != "syllabus.pdf" {
				t.Errorf("unexpected attachment projection: %+v", material)
			}
		case "m2":
			if material.HasFile || material.FileName != "" {
				t.Errorf("expected no attachment, got %+v", material)
			}
		default:
			t.Errorf("unexpected material %q", material.ID)
		}
	}
}

func TestCourseService_Enroll_UnknownCourse(t *testing.T) {
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)
	registerTestUser(t, userSvc, "study", models.RoleStudent)

	err := svc.Enroll(context.Background(), &EnrollCourseRequest{
		CourseID:        "missing",
		StudentUsername: "study",
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_UpdateBlock(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)

	registerTestUser(t, userSvc, "teach", models.RoleTeacher)
	student := registerTestUser(t, userSvc, "study", models.RoleStudent)

	created, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	blocked := true
	t.Run("non-enrolled pair is a silent no-op", func(t *testing.T) {
		resp, err := svc.UpdateBlock(ctx, created.ID, student.ID, &UpdateBlockStatusRequest{
			Username:  "teach",
			IsBlocked: &blocked,
		})
		if err != nil {
			t.Fatalf("UpdateBlock failed: %v", err)
		}
		if !resp.IsBlocked {
			t.Errorf("unexpected response: %+v", resp)
		}

		learners, err := repo.Enrollment().ListLearners(ctx, created.ID)
		if err != nil {
			t.Fatalf("ListLearners failed: %v", err)
		}
		if len(learners) != 0 {
			t.Errorf("no-op changed rows: %+v", learners)
		}
	})

	t.Run("enrolled pair gets flagged", func(t *testing.T) {
		if err := svc.Enroll(ctx, &EnrollCourseRequest{
			CourseID:        created.ID,
			StudentUsername: "study",
		}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}

		if _, err := svc.UpdateBlock(ctx, created.ID, student.ID, &UpdateBlockStatusRequest{
			Username:  "teach",
			IsBlocked: &blocked,
		}); err != nil {
			t.Fatalf("UpdateBlock failed: %v", err)
		}

		learners, err := repo.Enrollment().ListLearners(ctx, created.ID)
		if err != nil {
			t.Fatalf("ListLearners failed: %v", err)
		}
		if len(learners) != 1 || !learners[0].IsBlocked {
			t.Errorf("expected blocked learner, got %+v", learners)
		}
	})
}

func TestCourseService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)
	registerTestUser(t, userSvc, "teach", models.RoleTeacher)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, &CreateCourseRequest{
			Name:        "Business Course",
			Category:    models.CategoryBusiness,
			Subcategory: "finance",
			Description: "desc",
			Author:      "teach",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	limit := 2
	resp, err := svc.ListByCategory(ctx, &ListCoursesRequest{
		Category: models.CategoryBusiness,
		Limit:    &limit,
	})
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if resp.Category != models.CategoryBusiness {
		t.Errorf("unexpected category: %s", resp.Category)
	}
	if len(resp.Courses) != 2 {
		t.Fatalf("expected limit of 2 rows, got %d", len(resp.Courses))
	}
	for _, course := range resp.Courses {
		if course.Author != "Teach Tester" {
			t.Errorf("expected populated author name, got %q", course.Author)
		}
	}

	t.Run("non-positive limit is a field error", func(t *testing.T) {
		zero := 0
		_, err := svc.ListByCategory(ctx, &ListCoursesRequest{
			Category: models.CategoryBusiness,
			Limit:    &zero,
		})
		var fieldErrs utils.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

func TestCourseService_AddReview(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)

	registerTestUser(t, userSvc, "teach", models.RoleTeacher)
	registerTestUser(t, userSvc, "study", models.RoleStudent)

	created, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("empty review fails validation", func(t *testing.T) {
		err := svc.AddReview(ctx, created.ID, &AddReviewRequest{Username: "study", Review: ""})
		var fieldErrs utils.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})

	t.Run("review shows up in course detail", func(t *testing.T) {
		if err := svc.AddReview(ctx, created.ID, &AddReviewRequest{
			Username: "study",
			Review:   "clear and practical",
		}); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}

		detail, err := svc.GetDetail(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetDetail failed: %v", err)
		}
		if detail.FeedbackCount != 1 || len(detail.Feedback) != 1 {
			t.Fatalf("expected one feedback entry, got count=%d", detail.FeedbackCount)
		}
		entry := detail.Feedback[0]
		if entry.Student != "Study Tester" || entry.Feedback != "clear and practical" {
			t.Errorf("unexpected feedback entry: %+v", entry)
		}
		if matched, _ := regexp.MatchString(`^[A-Z][a-z]{2} \d{2}, \d{4}$`, entry.CreatedDate); !matched {
			t.Errorf("feedback date %q not in 'Jan 02, 2006' form", entry.CreatedDate)
		}
	})
}

func TestCourseService_RemoveStudent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	svc := newCourseService(repo)

	registerTestUser(t, userSvc, "teach", models.RoleTeacher)
	registerTestUser(t, userSvc, "study", models.RoleStudent)

	created, err := svc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Enroll(ctx, &EnrollCourseRequest{
		CourseID:        created.ID,
		StudentUsername: "study",
	}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	if err := svc.RemoveStudent(ctx, created.ID, &RemoveStudentRequest{
		AuthenticatedUsername: "teach",
		StudentUsername:       "study",
	}); err != nil {
		t.Fatalf("RemoveStudent failed: %v", err)
	}

	learners, err := repo.Enrollment().ListLearners(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListLearners failed: %v", err)
	}
	if len(learners) != 0 {
		t.Errorf("expected learner link removed, got %+v", learners)
	}
}
