package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/middleware"
	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
)

type reportRepoStub struct {
	reports   []models.Report
	created   *models.Report
	updated   bool
	deleted   bool
	feedback  string
	exportSet []models.Report
}

func (m *reportRepoStub) List(ctx context.Context, role models.UserRole, filter models.ReportFilter) ([]models.Report, error) {
	return m.reports, nil
}

func (m *reportRepoStub) FindByID(ctx context.Context, role models.UserRole, id int64) (*models.Report, error) {
	if len(m.reports) == 0 {
		return nil, nil
	}
	return &m.reports[0], nil
}

func (m *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	report.ID = 21
	m.created = report
	return nil
}

func (m *reportRepoStub) Update(ctx context.Context, id int64, update models.ReportUpdate) (bool, error) {
	return m.updated, nil
}

func (m *reportRepoStub) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleted, nil
}

func (m *reportRepoStub) AppendFeedback(ctx context.Context, id int64, tagged string) error {
	m.feedback = tagged
	return nil
}

func (m *reportRepoStub) ListForExport(ctx context.Context) ([]models.Report, error) {
	return m.exportSet, nil
}

type classCheckerStub struct {
	exists bool
}

func (m *classCheckerStub) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists, nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func stubReport() models.Report {
	lecturer := "T. Molapo"
	topic := "Routing"
	code := "DIWA2110"
	feedback := "[PRL]: Solid delivery"
	return models.Report{
		ID:            1,
		DateOfLecture: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		LecturerName:  &lecturer,
		TopicTaught:   &topic,
		CourseCode:    &code,
		Feedback:      &feedback,
	}
}

func newReportHandler(repo *reportRepoStub, classes *classCheckerStub) *ReportHandler {
	svc := service.NewReportService(repo, classes, validator.New(), zap.NewNop())
	return NewReportHandler(svc, nil)
}

func TestReportHandlerListStudentShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{reports: []models.Report{stubReport()}}, &classCheckerStub{})

	c, w := newGinContext(http.MethodGet, "/api/reports", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleStudent})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"lecturer_name":"T. Molapo"`)
	assert.Contains(t, body, `"topic_taught":"Routing"`)
	assert.NotContains(t, body, "feedback")
	assert.NotContains(t, body, "course_code")
}

func TestReportHandlerListReviewerShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{reports: []models.Report{stubReport()}}, &classCheckerStub{})

	c, w := newGinContext(http.MethodGet, "/api/reports", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 9, Role: models.RolePRL})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"feedback":"[PRL]: Solid delivery"`)
}

func TestReportHandlerListWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{}, &classCheckerStub{})

	c, w := newGinContext(http.MethodGet, "/api/reports", nil)
	handler.List(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportRepoStub{}
	handler := newReportHandler(repo, &classCheckerStub{exists: true})

	payload, _ := json.Marshal(map[string]interface{}{
		"class_id":        3,
		"date_of_lecture": "2025-03-10",
		"topic_taught":    "Middleware",
	})
	c, w := newGinContext(http.MethodPost, "/api/reports", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 7, Role: models.RoleLecturer})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(7), *repo.created.LecturerID)
}

func TestReportHandlerCreateUnknownClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{}, &classCheckerStub{exists: false})

	payload, _ := json.Marshal(map[string]interface{}{"class_id": 99, "date_of_lecture": "2025-03-10"})
	c, w := newGinContext(http.MethodPost, "/api/reports", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 7, Role: models.RoleLecturer})

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REFERENCE")
}

func TestReportHandlerAddFeedbackBlank(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportRepoStub{}
	handler := newReportHandler(repo, &classCheckerStub{})

	payload := []byte(`{"feedback":"   "}`)
	c, w := newGinContext(http.MethodPost, "/api/reports/feedback/1", payload)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 9, Role: models.RolePRL})

	handler.AddFeedback(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.feedback)
}

func TestReportHandlerAddFeedback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportRepoStub{}
	handler := newReportHandler(repo, &classCheckerStub{})

	payload := []byte(`{"feedback":"Cover recursion next week"}`)
	c, w := newGinContext(http.MethodPost, "/api/reports/feedback/1", payload)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 9, Role: models.RolePRL})

	handler.AddFeedback(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[PRL]: Cover recursion next week", repo.feedback)
}

func TestReportHandlerGetBadIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{reports: []models.Report{stubReport()}}, &classCheckerStub{})

	c, w := newGinContext(http.MethodGet, "/api/reports/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleStudent})

	handler.Get(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerExportAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandler(&reportRepoStub{exportSet: []models.Report{stubReport()}}, &classCheckerStub{})

	c, w := newGinContext(http.MethodGet, "/api/reports/export?format=csv", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 9, Role: models.RolePL})

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=Lecture_Reports.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "[PRL]: Solid delivery")
}
