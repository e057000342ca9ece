package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/luct-faculty/reporting-api/internal/models"
)

// ErrLectureUnrated signals that the rated report does not resolve to a
// lecturer.
var ErrLectureUnrated = errors.New("report does not resolve to a lecturer")

// RatingRepository manages the append-only ratings log.
type RatingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository constructs a new rating repository.
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// CreateStudentRating inserts a lecturer-to-student rating. LectureID
// stays null on this direction.
func (r *RatingRepository) CreateStudentRating(ctx context.Context, rating *models.Rating) error {
	rating.CreatedAt = time.Now().UTC()
	const query = `
INSERT INTO ratings (student_id, lecturer_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	if err := r.db.GetContext(ctx, &rating.ID, query,
		rating.StudentID, rating.LecturerID, rating.Rating, rating.Comment, rating.CreatedAt); err != nil {
		return fmt.Errorf("create student rating: %w", err)
	}
	return nil
}

// CreateLectureRating resolves the lecturer from the rated report and
// inserts a student-to-lecture rating in one transaction.
func (r *RatingRepository) CreateLectureRating(ctx context.Context, studentID, reportID int64, score int, comment *string) (*models.Rating, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin lecture rating: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lecturerID sql.NullInt64
	if err = tx.GetContext(ctx, &lecturerID, `SELECT lecturer_id FROM reports WHERE id = $1`, reportID); err != nil {
		return nil, err
	}
	if !lecturerID.Valid {
		err = ErrLectureUnrated
		return nil, err
	}

	rating := &models.Rating{
		StudentID:  studentID,
		LecturerID: lecturerID.Int64,
		LectureID:  &reportID,
		Rating:     score,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	const insert = `
INSERT INTO ratings (student_id, lecturer_id, lecture_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	if err = tx.GetContext(ctx, &rating.ID, insert,
		rating.StudentID, rating.LecturerID, rating.LectureID, rating.Rating, rating.Comment, rating.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert lecture rating: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit lecture rating: %w", err)
	}
	return rating, nil
}

// List returns the full rating log, newest first, with joined names.
func (r *RatingRepository) List(ctx context.Context) ([]models.RatingDetail, error) {
	const query = `
SELECT r.id, r.student_id, r.lecturer_id, r.lecture_id, r.rating, r.comment, r.created_at,
       rep.course_name,
       s.username AS student_name,
       u.username AS lecturer_name
FROM ratings r
LEFT JOIN users s ON r.student_id = s.id
LEFT JOIN users u ON r.lecturer_id = u.id
LEFT JOIN reports rep ON r.lecture_id = rep.id
ORDER BY r.created_at DESC`
	var ratings []models.RatingDetail
	if err := r.db.SelectContext(ctx, &ratings, query); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// ListRateableLectures returns reports students may rate, joined with
// the lecturer's username, newest lecture first.
func (r *RatingRepository) ListRateableLectures(ctx context.Context) ([]models.RateableLecture, error) {
	const query = `
SELECT rep.id, rep.course_name, rep.lecturer_id, u.username AS lecturer_name
FROM reports rep
JOIN users u ON rep.lecturer_id = u.id
ORDER BY rep.date_of_lecture DESC`
	var lectures []models.RateableLecture
	if err := r.db.SelectContext(ctx, &lectures, query); err != nil {
		return nil, fmt.Errorf("list rateable lectures: %w", err)
	}
	return lectures, nil
}
