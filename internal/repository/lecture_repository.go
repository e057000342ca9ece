package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/luct-faculty/reporting-api/internal/models"
)

// ErrCourseUnmatched signals that a report's course code resolved to no
// canonical course row.
var ErrCourseUnmatched = errors.New("no course matches the report course code")

// ErrLecturerUnresolved signals a report without a lecturer reference.
var ErrLecturerUnresolved = errors.New("report carries no lecturer id")

// LectureRepository manages persistence for assigned lectures.
type LectureRepository struct {
	db *sqlx.DB
}

// NewLectureRepository constructs a new lecture repository.
func NewLectureRepository(db *sqlx.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// List returns lectures with the joined course name.
func (r *LectureRepository) List(ctx context.Context) ([]models.Lecture, error) {
	const query = `
SELECT l.id, l.report_id, l.course_id, l.lecturer_id, l.date_of_lecture, c.name AS course_name
FROM lectures l
LEFT JOIN courses c ON l.course_id = c.id
ORDER BY l.date_of_lecture DESC`
	var lectures []models.Lecture
	if err := r.db.SelectContext(ctx, &lectures, query); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

// AssignFromReport materializes a lecture from the referenced report
// inside a single transaction: load the report, resolve its free-text
// course code against the canonical course table, insert the lecture.
// Assignment is deliberately not idempotent; every call creates a row.
func (r *LectureRepository) AssignFromReport(ctx context.Context, reportID int64) (*models.Lecture, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin assign lecture: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var report struct {
		CourseCode    *string   `db:"course_code"`
		LecturerID    *int64    `db:"lecturer_id"`
		DateOfLecture time.Time `db:"date_of_lecture"`
	}
	if err = tx.GetContext(ctx, &report, `SELECT course_code, lecturer_id, date_of_lecture FROM reports WHERE id = $1`, reportID); err != nil {
		return nil, err
	}

	if report.CourseCode == nil || strings.TrimSpace(*report.CourseCode) == "" {
		err = ErrCourseUnmatched
		return nil, err
	}
	if report.LecturerID == nil {
		err = ErrLecturerUnresolved
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(*report.CourseCode))
	var courseID int64
	if err = tx.GetContext(ctx, &courseID, `SELECT id FROM courses WHERE LOWER(TRIM(code)) = $1 LIMIT 1`, normalized); err != nil {
		if err == sql.ErrNoRows {
			err = ErrCourseUnmatched
		}
		return nil, err
	}

	lecture := &models.Lecture{
		ReportID:      &reportID,
		CourseID:      courseID,
		LecturerID:    *report.LecturerID,
		DateOfLecture: report.DateOfLecture,
	}
	const insert = `
INSERT INTO lectures (report_id, course_id, lecturer_id, date_of_lecture)
VALUES ($1, $2, $3, $4)
RETURNING id`
	if err = tx.GetContext(ctx, &lecture.ID, insert, lecture.ReportID, lecture.CourseID, lecture.LecturerID, lecture.DateOfLecture); err != nil {
		return nil, fmt.Errorf("insert lecture: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assign lecture: %w", err)
	}
	return lecture, nil
}

// UpdateDate changes a lecture's scheduled date and reports whether a
// row matched.
func (r *LectureRepository) UpdateDate(ctx context.Context, id int64, dateOfLecture time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE lectures SET date_of_lecture = $1 WHERE id = $2`, dateOfLecture, id)
	if err != nil {
		return false, fmt.Errorf("update lecture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update lecture: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a lecture and reports whether a row matched.
func (r *LectureRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lectures WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lecture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lecture: %w", err)
	}
	return affected > 0, nil
}
