package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/skilldeck/learning-platform/internal/models"
)

func TestExportService_ExportRoster(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	userSvc := newUserService(repo)
	courseSvc := newCourseService(repo)
	svc := NewExportService(repo, newTestLogger())

	registerTestUser(t, userSvc, "teach", models.RoleTeacher)
	registerTestUser(t, userSvc, "study", models.RoleStudent)

	created, err := courseSvc.Create(ctx, &CreateCourseRequest{
		Name:        "Go Fundamentals",
		Category:    models.CategoryDevelopment,
		Subcategory: "backend",
		Description: "desc",
		Author:      "teach",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := courseSvc.Enroll(ctx, &EnrollCourseRequest{
		CourseID:        created.ID,
		StudentUsername: "study",
	}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	export, err := svc.ExportRoster(ctx, created.ID)
	if err != nil {
		t.Fatalf("ExportRoster failed: %v", err)
	}
	if export.FileName != created.ID+"_roster.xlsx" {
		t.Errorf("unexpected file name %q", export.FileName)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(export.Data))
	if err != nil {
		t.Fatalf("exported data is not a readable workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("Roster")
	if err != nil {
		t.Fatalf("failed to read roster sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one learner row, got %d rows", len(rows))
	}
	if rows[0][0] != "Username" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "study" || rows[1][1] != "Study Tester" {
		t.Errorf("unexpected learner row: %v", rows[1])
	}
}

func TestExportService_ExportRoster_UnknownCourse(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExportService(repo, newTestLogger())

	_, err := svc.ExportRoster(context.Background(), "missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}
