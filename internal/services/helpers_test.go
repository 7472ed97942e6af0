package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skilldeck/learning-platform/internal/events"
	"github.com/skilldeck/learning-platform/internal/models"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/repositories/postgres"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
	"github.com/skilldeck/learning-platform/pkg"
)

// newTestRepo opens an isolated in-memory database migrated with the full
// schema.
func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := pkg.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
}

func newTestLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestPublisher() *events.MockEventPublisher {
	return events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// registerTestUser creates a user through the user service so the full
// identity (role, status, interests) exists.
func registerTestUser(t *testing.T, svc UserService, username string, role models.UserRole, interests ...string) *RegisterResponse {
	t.Helper()

	req := &RegisterUserRequest{
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Email:     username + "@example.com",
		Role:      role,
		Password:  "sup3r-secret",
	}
	for _, tag := range interests {
		req.Interests = append(req.Interests, validator.InterestRequest{Interest: tag})
	}

	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return resp
}

func newUserService(repo repositories.Repository) UserService {
	return NewUserService(repo, validator.New(), newTestLogger(), newTestPublisher())
}

func newCourseService(repo repositories.Repository) CourseService {
	return NewCourseService(repo, validator.New(), newTestLogger(), newTestPublisher())
}
