package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/models"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
)

type mockReportRepo struct {
	reports     []models.Report
	listErr     error
	report      *models.Report
	findErr     error
	created     *models.Report
	createErr   error
	updated     bool
	updateCall  *models.ReportUpdate
	updateErr   error
	deleted     bool
	deleteErr   error
	feedbackArg string
	feedbackErr error
}

func (m *mockReportRepo) List(ctx context.Context, role models.UserRole, filter models.ReportFilter) ([]models.Report, error) {
	return m.reports, m.listErr
}

func (m *mockReportRepo) FindByID(ctx context.Context, role models.UserRole, id int64) (*models.Report, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.report, nil
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.Report) error {
	if m.createErr != nil {
		return m.createErr
	}
	report.ID = 11
	m.created = report
	return nil
}

func (m *mockReportRepo) Update(ctx context.Context, id int64, update models.ReportUpdate) (bool, error) {
	m.updateCall = &update
	return m.updated, m.updateErr
}

func (m *mockReportRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleted, m.deleteErr
}

func (m *mockReportRepo) AppendFeedback(ctx context.Context, id int64, tagged string) error {
	if m.feedbackErr != nil {
		return m.feedbackErr
	}
	m.feedbackArg = tagged
	return nil
}

func (m *mockReportRepo) ListForExport(ctx context.Context) ([]models.Report, error) {
	return m.reports, m.listErr
}

type mockClassChecker struct {
	exists bool
	err    error
}

func (m *mockClassChecker) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists, m.err
}

func newReportService(repo *mockReportRepo, classes *mockClassChecker) *ReportService {
	return NewReportService(repo, classes, validator.New(), zap.NewNop())
}

func sampleReport() models.Report {
	classID := int64(3)
	lecturerID := int64(7)
	present := 28
	name := "Web Application Development"
	code := "DIWA2110"
	lecturer := "T. Molapo"
	topic := "Routing"
	venue := "Hall 6"
	feedback := "Solid delivery"
	return models.Report{
		ID:              1,
		ClassID:         &classID,
		LecturerID:      &lecturerID,
		DateOfLecture:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CourseName:      &name,
		CourseCode:      &code,
		LecturerName:    &lecturer,
		TopicTaught:     &topic,
		PresentStudents: &present,
		ClassVenue:      &venue,
		Feedback:        &feedback,
	}
}

func TestReportServiceListStudentProjection(t *testing.T) {
	repo := &mockReportRepo{reports: []models.Report{sampleReport()}}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	out, err := svc.List(context.Background(), models.RoleStudent, models.ReportFilter{})
	require.NoError(t, err)

	views, ok := out.([]models.StudentReportView)
	require.True(t, ok)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, "T. Molapo", *views[0].LecturerName)
	assert.Equal(t, "Routing", *views[0].TopicTaught)
}

func TestReportServiceListLecturerProjectionHasNoFeedback(t *testing.T) {
	repo := &mockReportRepo{reports: []models.Report{sampleReport()}}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	out, err := svc.List(context.Background(), models.RoleLecturer, models.ReportFilter{})
	require.NoError(t, err)

	views, ok := out.([]models.LecturerReportView)
	require.True(t, ok)
	require.Len(t, views, 1)
	assert.Equal(t, "DIWA2110", *views[0].CourseCode)
	assert.Equal(t, 28, *views[0].PresentStudents)
}

func TestReportServiceReviewerFeedbackSanitized(t *testing.T) {
	report := sampleReport()
	tainted := "Good session. Rating:4 overall"
	report.Feedback = &tainted
	repo := &mockReportRepo{reports: []models.Report{report}}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	out, err := svc.List(context.Background(), models.RolePRL, models.ReportFilter{})
	require.NoError(t, err)

	views, ok := out.([]models.ReviewerReportView)
	require.True(t, ok)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Feedback)
	assert.Equal(t, "Feedback available (ratings removed)", *views[0].Feedback)
	assert.Equal(t, "Hall 6", *views[0].ClassVenue)
}

func TestReportServiceReviewerCleanFeedbackPassesThrough(t *testing.T) {
	repo := &mockReportRepo{reports: []models.Report{sampleReport()}}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	out, err := svc.List(context.Background(), models.RolePL, models.ReportFilter{})
	require.NoError(t, err)

	views := out.([]models.ReviewerReportView)
	require.Len(t, views, 1)
	assert.Equal(t, "Solid delivery", *views[0].Feedback)
}

func TestReportServiceGetNotFound(t *testing.T) {
	repo := &mockReportRepo{findErr: sql.ErrNoRows}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	_, err := svc.Get(context.Background(), models.RoleStudent, 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceCreateRequiresExistingClass(t *testing.T) {
	repo := &mockReportRepo{}
	svc := newReportService(repo, &mockClassChecker{exists: false})

	_, err := svc.Create(context.Background(), 7, CreateReportRequest{ClassID: 99, DateOfLecture: "2025-03-10"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestReportServiceCreateSetsLecturerFromCaller(t *testing.T) {
	repo := &mockReportRepo{}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	topic := "Middleware"
	report, err := svc.Create(context.Background(), 7, CreateReportRequest{
		ClassID:       3,
		DateOfLecture: "2025-03-10",
		TopicTaught:   &topic,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), report.ID)
	require.NotNil(t, report.LecturerID)
	assert.Equal(t, int64(7), *report.LecturerID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), report.DateOfLecture)
}

func TestReportServiceCreateRejectsBadDate(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockClassChecker{exists: true})

	_, err := svc.Create(context.Background(), 7, CreateReportRequest{ClassID: 3, DateOfLecture: "10/03/2025"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceUpdateRequiresAtLeastOneField(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockClassChecker{exists: true})

	err := svc.Update(context.Background(), 1, UpdateReportRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceUpdateUnknownID(t *testing.T) {
	topic := "Sessions"
	repo := &mockReportRepo{updated: false}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	err := svc.Update(context.Background(), 99, UpdateReportRequest{TopicTaught: &topic})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportServiceAddFeedbackRejectsBlank(t *testing.T) {
	repo := &mockReportRepo{}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	err := svc.AddFeedback(context.Background(), 1, FeedbackRequest{Feedback: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.feedbackArg)
}

func TestReportServiceAddFeedbackTagsEntry(t *testing.T) {
	repo := &mockReportRepo{}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	err := svc.AddFeedback(context.Background(), 1, FeedbackRequest{Feedback: "  Cover recursion next week  "})
	require.NoError(t, err)
	assert.Equal(t, "[PRL]: Cover recursion next week", repo.feedbackArg)
}

func TestReportServiceExportCSVKeepsRawFeedback(t *testing.T) {
	report := sampleReport()
	tainted := "Rating:4 embedded"
	report.Feedback = &tainted
	empty := sampleReport()
	empty.ID = 2
	empty.Feedback = nil
	repo := &mockReportRepo{reports: []models.Report{report, empty}}
	svc := newReportService(repo, &mockClassChecker{exists: true})

	res, err := svc.Export(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Lecture_Reports.csv", res.Filename)
	assert.Equal(t, "text/csv", res.ContentType)

	body := string(res.Content)
	assert.True(t, strings.HasPrefix(body, "Faculty Name,"))
	assert.Contains(t, body, "Rating:4 embedded")
	assert.Contains(t, body, "None")
	assert.NotContains(t, body, "Feedback available (ratings removed)")
}

func TestReportServiceExportUnsupportedFormat(t *testing.T) {
	svc := newReportService(&mockReportRepo{}, &mockClassChecker{exists: true})

	_, err := svc.Export(context.Background(), "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
