package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/middleware"
	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
)

type ratingRepoStub struct {
	studentRating *models.Rating
	lectureRating *models.Rating
}

func (m *ratingRepoStub) CreateStudentRating(ctx context.Context, rating *models.Rating) error {
	rating.ID = 5
	m.studentRating = rating
	return nil
}

func (m *ratingRepoStub) CreateLectureRating(ctx context.Context, studentID, reportID int64, score int, comment *string) (*models.Rating, error) {
	m.lectureRating = &models.Rating{ID: 6, StudentID: studentID, LecturerID: 7, LectureID: &reportID, Rating: score}
	return m.lectureRating, nil
}

func (m *ratingRepoStub) List(ctx context.Context) ([]models.RatingDetail, error) {
	return nil, nil
}

func (m *ratingRepoStub) ListRateableLectures(ctx context.Context) ([]models.RateableLecture, error) {
	return nil, nil
}

type userFinderStub struct {
	user *models.User
}

func (m *userFinderStub) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return m.user, nil
}

func (m *userFinderStub) ListStudents(ctx context.Context) ([]models.StudentRef, error) {
	return []models.StudentRef{{ID: 3, Username: "student1"}}, nil
}

func newRatingHandler(repo *ratingRepoStub, users *userFinderStub) *RatingHandler {
	svc := service.NewRatingService(repo, users, validator.New(), zap.NewNop())
	return NewRatingHandler(svc)
}

func TestRatingHandlerLecturerRatesStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &ratingRepoStub{}
	handler := newRatingHandler(repo, &userFinderStub{user: &models.User{ID: 3, Role: models.RoleStudent}})

	payload, _ := json.Marshal(map[string]interface{}{"target_id": 3, "rating": 4})
	c, w := newGinContext(http.MethodPost, "/api/rating", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 7, Role: models.RoleLecturer})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.studentRating)
	assert.Nil(t, repo.studentRating.LectureID)
}

func TestRatingHandlerStudentRatesLecture(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &ratingRepoStub{}
	handler := newRatingHandler(repo, &userFinderStub{})

	payload, _ := json.Marshal(map[string]interface{}{"target_id": 12, "rating": 5})
	c, w := newGinContext(http.MethodPost, "/api/rating", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleStudent})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.lectureRating)
	require.NotNil(t, repo.lectureRating.LectureID)
	assert.Equal(t, int64(12), *repo.lectureRating.LectureID)
}

func TestRatingHandlerReviewerForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newRatingHandler(&ratingRepoStub{}, &userFinderStub{})

	payload, _ := json.Marshal(map[string]interface{}{"target_id": 3, "rating": 4})
	c, w := newGinContext(http.MethodPost, "/api/rating", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 9, Role: models.RolePRL})

	handler.Create(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRatingHandlerRatingOutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newRatingHandler(&ratingRepoStub{}, &userFinderStub{})

	payload, _ := json.Marshal(map[string]interface{}{"target_id": 12, "rating": 9})
	c, w := newGinContext(http.MethodPost, "/api/rating", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleStudent})

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRatingHandlerStudentsToRate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newRatingHandler(&ratingRepoStub{}, &userFinderStub{})

	c, w := newGinContext(http.MethodGet, "/api/students-to-rate", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 7, Role: models.RoleLecturer})

	handler.StudentsToRate(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "student1")
}
