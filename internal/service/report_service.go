package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/models"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/export"
)

// ratingMarker matches numeric rating markers embedded in free-text
// feedback. Reviewer projections must not leak those values.
var ratingMarker = regexp.MustCompile(`Rating:[0-5]`)

const feedbackPlaceholder = "Feedback available (ratings removed)"

type reportRepository interface {
	List(ctx context.Context, role models.UserRole, filter models.ReportFilter) ([]models.Report, error)
	FindByID(ctx context.Context, role models.UserRole, id int64) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, id int64, update models.ReportUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AppendFeedback(ctx context.Context, id int64, tagged string) error
	ListForExport(ctx context.Context) ([]models.Report, error)
}

type classChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreateReportRequest carries the payload for submitting a lecture
// report. Only the allow-listed columns are writable.
type CreateReportRequest struct {
	ClassID              int64   `json:"class_id" validate:"required"`
	DateOfLecture        string  `json:"date_of_lecture" validate:"required,datetime=2006-01-02"`
	FacultyName          *string `json:"faculty_name"`
	WeekOfReporting      *string `json:"week_of_reporting"`
	CourseName           *string `json:"course_name"`
	CourseCode           *string `json:"course_code"`
	LecturerName         *string `json:"lecturer_name"`
	PresentStudents      *int    `json:"actual_number_of_students_present" validate:"omitempty,min=0"`
	RegisteredStudents   *int    `json:"total_number_of_registered_students" validate:"omitempty,min=0"`
	Venue                *string `json:"venue"`
	ScheduledLectureTime *string `json:"scheduled_lecture_time"`
	TopicTaught          *string `json:"topic_taught"`
	LearningOutcomes     *string `json:"learning_outcomes"`
	Recommendations      *string `json:"recommendations"`
}

// UpdateReportRequest carries a partial report update. At least one
// field must be present.
type UpdateReportRequest struct {
	ClassID              *int64  `json:"class_id"`
	DateOfLecture        *string `json:"date_of_lecture" validate:"omitempty,datetime=2006-01-02"`
	FacultyName          *string `json:"faculty_name"`
	WeekOfReporting      *string `json:"week_of_reporting"`
	CourseName           *string `json:"course_name"`
	CourseCode           *string `json:"course_code"`
	LecturerName         *string `json:"lecturer_name"`
	PresentStudents      *int    `json:"actual_number_of_students_present" validate:"omitempty,min=0"`
	RegisteredStudents   *int    `json:"total_number_of_registered_students" validate:"omitempty,min=0"`
	Venue                *string `json:"venue"`
	ScheduledLectureTime *string `json:"scheduled_lecture_time"`
	TopicTaught          *string `json:"topic_taught"`
	LearningOutcomes     *string `json:"learning_outcomes"`
	Recommendations      *string `json:"recommendations"`
}

// FeedbackRequest carries a feedback annotation.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ExportResult bundles a rendered spreadsheet for download.
type ExportResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ReportService implements report submission, the role-shaped
// visibility projections, feedback annotation and export.
type ReportService struct {
	repo      reportRepository
	classes   classChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(repo reportRepository, classes classChecker, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReportService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// List returns reports projected for the caller's role.
func (s *ReportService) List(ctx context.Context, role models.UserRole, filter models.ReportFilter) (interface{}, error) {
	reports, err := s.repo.List(ctx, role, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return shapeReports(role, reports), nil
}

// Get returns one report projected for the caller's role.
func (s *ReportService) Get(ctx context.Context, role models.UserRole, id int64) (interface{}, error) {
	report, err := s.repo.FindByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch report")
	}
	return shapeReport(role, *report), nil
}

// ListFeedback returns the reviewer projection regardless of how broad
// the caller's own projection is. The router restricts it to pl/prl.
func (s *ReportService) ListFeedback(ctx context.Context, filter models.ReportFilter) ([]models.ReviewerReportView, error) {
	reports, err := s.repo.List(ctx, models.RolePRL, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	out := make([]models.ReviewerReportView, 0, len(reports))
	for _, r := range reports {
		out = append(out, reviewerView(r))
	}
	return out, nil
}

// Create submits a new lecture report for the authenticated lecturer.
func (s *ReportService) Create(ctx context.Context, lecturerID int64, req CreateReportRequest) (*models.Report, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class_id and date_of_lecture are required")
	}

	exists, err := s.classes.Exists(ctx, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "class does not exist")
	}

	date, err := time.Parse("2006-01-02", req.DateOfLecture)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_of_lecture must be YYYY-MM-DD")
	}

	report := &models.Report{
		ClassID:              &req.ClassID,
		FacultyName:          req.FacultyName,
		WeekOfReporting:      req.WeekOfReporting,
		DateOfLecture:        date,
		CourseName:           req.CourseName,
		CourseCode:           req.CourseCode,
		LecturerName:         req.LecturerName,
		LecturerID:           &lecturerID,
		PresentStudents:      req.PresentStudents,
		RegisteredStudents:   req.RegisteredStudents,
		Venue:                req.Venue,
		ScheduledLectureTime: req.ScheduledLectureTime,
		TopicTaught:          req.TopicTaught,
		LearningOutcomes:     req.LearningOutcomes,
		Recommendations:      req.Recommendations,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report")
	}

	s.logger.Info("report created",
		zap.Int64("report_id", report.ID),
		zap.Int64("lecturer_id", lecturerID))
	return report, nil
}

// Update applies a partial update to a report.
func (s *ReportService) Update(ctx context.Context, id int64, req UpdateReportRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	update := models.ReportUpdate{
		ClassID:              req.ClassID,
		FacultyName:          req.FacultyName,
		WeekOfReporting:      req.WeekOfReporting,
		CourseName:           req.CourseName,
		CourseCode:           req.CourseCode,
		LecturerName:         req.LecturerName,
		PresentStudents:      req.PresentStudents,
		RegisteredStudents:   req.RegisteredStudents,
		Venue:                req.Venue,
		ScheduledLectureTime: req.ScheduledLectureTime,
		TopicTaught:          req.TopicTaught,
		LearningOutcomes:     req.LearningOutcomes,
		Recommendations:      req.Recommendations,
	}
	if req.DateOfLecture != nil {
		date, err := time.Parse("2006-01-02", *req.DateOfLecture)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "date_of_lecture must be YYYY-MM-DD")
		}
		update.DateOfLecture = &date
	}
	if update.IsEmpty() {
		return appErrors.Clone(appErrors.ErrValidation, "at least one field is required")
	}
	if req.ClassID != nil {
		exists, err := s.classes.Exists(ctx, *req.ClassID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrInvalidReference, "class does not exist")
		}
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update report")
	}
	if !updated {
		return appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	return nil
}

// Delete removes a report.
func (s *ReportService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete report")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	return nil
}

// AddFeedback appends a tagged feedback line to a report's feedback log.
func (s *ReportService) AddFeedback(ctx context.Context, id int64, req FeedbackRequest) error {
	trimmed := strings.TrimSpace(req.Feedback)
	if trimmed == "" {
		return appErrors.Clone(appErrors.ErrValidation, "feedback is required")
	}

	if err := s.repo.AppendFeedback(ctx, id, "[PRL]: "+trimmed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add feedback")
	}
	return nil
}

// Export formats supported by the report export endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Export renders every report as a downloadable spreadsheet. Feedback is
// exported raw, without the reviewer-view sanitization.
func (s *ReportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	reports, err := s.repo.ListForExport(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports for export")
	}

	dataset := exportDataset(reports)
	result := &ExportResult{Filename: "Lecture_Reports." + format}

	switch format {
	case FormatCSV:
		result.Content, err = export.NewCSVExporter().Render(dataset)
		result.ContentType = "text/csv"
	case FormatXLSX:
		result.Content, err = export.NewXLSXExporter().Render(dataset, "Reports")
		result.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		result.Content, err = export.NewPDFExporter().Render(dataset, "Lecture Reports")
		result.ContentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx or pdf")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return result, nil
}

var exportHeaders = []string{
	"Faculty Name", "Class Name", "Week of Reporting", "Date of Lecture",
	"Course Name", "Course Code", "Lecturer Name", "Students Present",
	"Students Registered", "Venue", "Scheduled Time", "Topic Taught",
	"Learning Outcomes", "Recommendations", "Feedback",
}

func exportDataset(reports []models.Report) export.Dataset {
	rows := make([]map[string]string, 0, len(reports))
	for _, r := range reports {
		feedback := strDeref(r.Feedback)
		if feedback == "" {
			feedback = "None"
		}
		rows = append(rows, map[string]string{
			"Faculty Name":        strDeref(r.FacultyName),
			"Class Name":          strDeref(r.ClassName),
			"Week of Reporting":   strDeref(r.WeekOfReporting),
			"Date of Lecture":     r.DateOfLecture.Format("2006-01-02"),
			"Course Name":         strDeref(r.CourseName),
			"Course Code":         strDeref(r.CourseCode),
			"Lecturer Name":       strDeref(r.LecturerName),
			"Students Present":    intDeref(r.PresentStudents),
			"Students Registered": intDeref(r.RegisteredStudents),
			"Venue":               strDeref(r.Venue),
			"Scheduled Time":      strDeref(r.ScheduledLectureTime),
			"Topic Taught":        strDeref(r.TopicTaught),
			"Learning Outcomes":   strDeref(r.LearningOutcomes),
			"Recommendations":     strDeref(r.Recommendations),
			"Feedback":            feedback,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func shapeReports(role models.UserRole, reports []models.Report) interface{} {
	switch role {
	case models.RoleLecturer:
		out := make([]models.LecturerReportView, 0, len(reports))
		for _, r := range reports {
			out = append(out, lecturerView(r))
		}
		return out
	case models.RolePL, models.RolePRL:
		out := make([]models.ReviewerReportView, 0, len(reports))
		for _, r := range reports {
			out = append(out, reviewerView(r))
		}
		return out
	default:
		out := make([]models.StudentReportView, 0, len(reports))
		for _, r := range reports {
			out = append(out, studentView(r))
		}
		return out
	}
}

func shapeReport(role models.UserRole, r models.Report) interface{} {
	switch role {
	case models.RoleLecturer:
		return lecturerView(r)
	case models.RolePL, models.RolePRL:
		return reviewerView(r)
	default:
		return studentView(r)
	}
}

func studentView(r models.Report) models.StudentReportView {
	return models.StudentReportView{
		ID:            r.ID,
		LecturerName:  r.LecturerName,
		DateOfLecture: r.DateOfLecture,
		TopicTaught:   r.TopicTaught,
	}
}

func lecturerView(r models.Report) models.LecturerReportView {
	return models.LecturerReportView{
		ID:                   r.ID,
		ClassID:              r.ClassID,
		ClassName:            r.ClassName,
		FacultyName:          r.FacultyName,
		WeekOfReporting:      r.WeekOfReporting,
		DateOfLecture:        r.DateOfLecture,
		CourseName:           r.CourseName,
		CourseCode:           r.CourseCode,
		LecturerName:         r.LecturerName,
		LecturerID:           r.LecturerID,
		PresentStudents:      r.PresentStudents,
		RegisteredStudents:   r.RegisteredStudents,
		Venue:                r.Venue,
		ScheduledLectureTime: r.ScheduledLectureTime,
		TopicTaught:          r.TopicTaught,
		LearningOutcomes:     r.LearningOutcomes,
		Recommendations:      r.Recommendations,
	}
}

func reviewerView(r models.Report) models.ReviewerReportView {
	return models.ReviewerReportView{
		LecturerReportView: lecturerView(r),
		ClassVenue:         r.ClassVenue,
		Feedback:           sanitizeFeedback(r.Feedback),
	}
}

// sanitizeFeedback collapses feedback that embeds a rating marker into
// a fixed placeholder so ratings never leak through the reviewer view.
func sanitizeFeedback(feedback *string) *string {
	if feedback == nil || *feedback == "" {
		return feedback
	}
	if ratingMarker.MatchString(*feedback) {
		placeholder := feedbackPlaceholder
		return &placeholder
	}
	return feedback
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intDeref(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
