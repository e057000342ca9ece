package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/repository"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
)

type ratingRepository interface {
	CreateStudentRating(ctx context.Context, rating *models.Rating) error
	CreateLectureRating(ctx context.Context, studentID, reportID int64, score int, comment *string) (*models.Rating, error)
	List(ctx context.Context) ([]models.RatingDetail, error)
	ListRateableLectures(ctx context.Context) ([]models.RateableLecture, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListStudents(ctx context.Context) ([]models.StudentRef, error)
}

// CreateRatingRequest carries a rating in either direction. TargetID is
// a student id when a lecturer rates, a report id when a student rates.
type CreateRatingRequest struct {
	TargetID int64   `json:"target_id" validate:"required"`
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Comment  *string `json:"comment"`
}

// RatingService enforces the bidirectional rating rule: lecturers rate
// students generically, students rate a delivered lecture.
type RatingService struct {
	repo      ratingRepository
	users     userFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRatingService constructs a RatingService instance.
func NewRatingService(repo ratingRepository, users userFinder, validate *validator.Validate, logger *zap.Logger) *RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RatingService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create records a rating for the caller's direction. Any role other
// than student or lecturer is rejected.
func (s *RatingService) Create(ctx context.Context, caller *models.JWTClaims, req CreateRatingRequest) (*models.Rating, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "rating must be between 1 and 5")
	}

	switch caller.Role {
	case models.RoleLecturer:
		return s.createStudentRating(ctx, caller.UserID, req)
	case models.RoleStudent:
		return s.createLectureRating(ctx, caller.UserID, req)
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students and lecturers can rate")
	}
}

// createStudentRating inserts a lecturer-to-student rating with no
// lecture reference. The target must exist and hold the student role.
func (s *RatingService) createStudentRating(ctx context.Context, lecturerID int64, req CreateRatingRequest) (*models.Rating, error) {
	target, err := s.users.FindByID(ctx, req.TargetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidReference, "student does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check rating target")
	}
	if target.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, "rating target is not a student")
	}

	rating := &models.Rating{
		StudentID:  req.TargetID,
		LecturerID: lecturerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.CreateStudentRating(ctx, rating); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rating")
	}

	s.logger.Info("student rated",
		zap.Int64("lecturer_id", lecturerID),
		zap.Int64("student_id", req.TargetID))
	return rating, nil
}

// createLectureRating inserts a student-to-lecture rating. The target is
// a report id; the rated lecturer is resolved from that report.
func (s *RatingService) createLectureRating(ctx context.Context, studentID int64, req CreateRatingRequest) (*models.Rating, error) {
	rating, err := s.repo.CreateLectureRating(ctx, studentID, req.TargetID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
		case errors.Is(err, repository.ErrLectureUnrated):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecture has no lecturer to rate")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rating")
		}
	}

	s.logger.Info("lecture rated",
		zap.Int64("student_id", studentID),
		zap.Int64("report_id", req.TargetID))
	return rating, nil
}

// List returns all ratings, newest first.
func (s *RatingService) List(ctx context.Context) ([]models.RatingDetail, error) {
	ratings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ratings")
	}
	return ratings, nil
}

// StudentsToRate returns the student roster lecturers pick from.
func (s *RatingService) StudentsToRate(ctx context.Context) ([]models.StudentRef, error) {
	students, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// LecturesToRate returns the rateable lectures students pick from.
func (s *RatingService) LecturesToRate(ctx context.Context) ([]models.RateableLecture, error) {
	lectures, err := s.repo.ListRateableLectures(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rateable lectures")
	}
	return lectures, nil
}
