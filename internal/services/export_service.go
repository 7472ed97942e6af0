package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/utils"
)

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportRoster renders the course's enrolled students as an xlsx sheet.
func (s *exportService) ExportRoster(ctx context.Context, courseID string) (*RosterExport, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	learners, err := s.repo.Enrollment().ListLearners(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load learners: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Username", "Name", "Email", "Enrolled", "Blocked"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, learner := range learners {
		values := []any{
			learner.User.Username,
			learner.User.FullName(),
			learner.User.Email,
			learner.CreatedAt.Format(displayDateFormat),
			learner.IsBlocked,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("roster exported", "course_id", courseID, "learners", len(learners))

	return &RosterExport{
		FileName: fmt.Sprintf("%s_roster.xlsx", course.ID),
		Data:     buf.Bytes(),
	}, nil
}
