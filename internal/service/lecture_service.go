package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/repository"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
)

type lectureRepository interface {
	List(ctx context.Context) ([]models.Lecture, error)
	AssignFromReport(ctx context.Context, reportID int64) (*models.Lecture, error)
	UpdateDate(ctx context.Context, id int64, dateOfLecture time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type reportsPicker interface {
	ListAvailable(ctx context.Context) ([]models.AvailableReport, error)
}

// AssignLectureRequest names the report to materialize a lecture from.
type AssignLectureRequest struct {
	ReportID int64 `json:"report_id" validate:"required"`
}

// UpdateLectureRequest carries a lecture reschedule.
type UpdateLectureRequest struct {
	DateOfLecture string `json:"date_of_lecture" validate:"required,datetime=2006-01-02"`
}

// LectureService resolves reports into canonical lecture rows.
type LectureService struct {
	repo      lectureRepository
	reports   reportsPicker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLectureService constructs a LectureService instance.
func NewLectureService(repo lectureRepository, reports reportsPicker, validate *validator.Validate, logger *zap.Logger) *LectureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LectureService{repo: repo, reports: reports, validator: validate, logger: logger}
}

// List returns all lectures with their joined course names.
func (s *LectureService) List(ctx context.Context) ([]models.Lecture, error) {
	lectures, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lectures")
	}
	return lectures, nil
}

// Assign matches a report's course code against the course catalogue
// and materializes a lecture row. Each call creates a new row.
func (s *LectureService) Assign(ctx context.Context, req AssignLectureRequest) (*models.Lecture, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "report_id is required")
	}

	lecture, err := s.repo.AssignFromReport(ctx, req.ReportID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		case errors.Is(err, repository.ErrCourseUnmatched):
			return nil, appErrors.Clone(appErrors.ErrUnresolvedReference, "no course matches the report course code")
		case errors.Is(err, repository.ErrLecturerUnresolved):
			return nil, appErrors.Clone(appErrors.ErrUnresolvedReference, "report has no lecturer to assign")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign lecture")
		}
	}

	s.logger.Info("lecture assigned",
		zap.Int64("lecture_id", lecture.ID),
		zap.Int64("report_id", req.ReportID),
		zap.Int64("course_id", lecture.CourseID))
	return lecture, nil
}

// UpdateDate reschedules a lecture.
func (s *LectureService) UpdateDate(ctx context.Context, id int64, req UpdateLectureRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date_of_lecture must be YYYY-MM-DD")
	}
	date, err := time.Parse("2006-01-02", req.DateOfLecture)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date_of_lecture must be YYYY-MM-DD")
	}

	updated, err := s.repo.UpdateDate(ctx, id, date)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lecture")
	}
	if !updated {
		return appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
	}
	return nil
}

// Delete removes a lecture.
func (s *LectureService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lecture")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
	}
	return nil
}

// AvailableReports lists reports eligible for assignment, newest first.
func (s *LectureService) AvailableReports(ctx context.Context) ([]models.AvailableReport, error) {
	reports, err := s.reports.ListAvailable(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available reports")
	}
	return reports, nil
}
