package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/luct-faculty/reporting-api/internal/models"
)

// Per-role projection column sets. An explicit allow-list per role
// replaces the source system's string-spliced SELECT clauses: every
// readable column is named, so a role can never receive a column its
// projection does not mention.
const (
	studentReportColumns = `r.id, r.lecturer_name, r.date_of_lecture, r.topic_taught`

	lecturerReportColumns = `r.id, r.faculty_name, r.class_id, c.class_name, r.week_of_reporting,
       r.date_of_lecture, r.course_name, r.course_code, r.lecturer_name,
       r.actual_number_of_students_present, r.total_number_of_registered_students,
       r.venue, r.scheduled_lecture_time, r.topic_taught, r.learning_outcomes,
       r.recommendations, r.lecturer_id`

	reviewerReportColumns = lecturerReportColumns + `, c.venue AS class_venue, r.feedback`
)

// reportColumnsForRole maps a role to its projection. Unknown roles fall
// back to the minimal student shape.
func reportColumnsForRole(role models.UserRole) string {
	switch role {
	case models.RoleLecturer:
		return lecturerReportColumns
	case models.RolePL, models.RolePRL:
		return reviewerReportColumns
	default:
		return studentReportColumns
	}
}

// ReportRepository manages persistence for lecture reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a new report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// List returns reports shaped by the caller's role projection, newest
// lecture first, optionally filtered by course or lecturer name.
func (r *ReportRepository) List(ctx context.Context, role models.UserRole, filter models.ReportFilter) ([]models.Report, error) {
	base := fmt.Sprintf("SELECT %s FROM reports r LEFT JOIN classes c ON r.class_id = c.class_id", reportColumnsForRole(role))
	var args []interface{}
	if filter.Search != "" {
		base += " WHERE (LOWER(r.course_name) LIKE $1 OR LOWER(r.lecturer_name) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	base += " ORDER BY r.date_of_lecture DESC"

	var reports []models.Report
	if err := r.db.SelectContext(ctx, &reports, base, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// FindByID returns a single report shaped by the caller's role projection.
func (r *ReportRepository) FindByID(ctx context.Context, role models.UserRole, id int64) (*models.Report, error) {
	query := fmt.Sprintf("SELECT %s FROM reports r LEFT JOIN classes c ON r.class_id = c.class_id WHERE r.id = $1", reportColumnsForRole(role))
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, err
	}
	return &report, nil
}

// Create inserts a report using the fixed column schema and returns the
// assigned id.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	const query = `
INSERT INTO reports (class_id, faculty_name, week_of_reporting, date_of_lecture,
                     course_name, course_code, lecturer_name, lecturer_id,
                     actual_number_of_students_present, total_number_of_registered_students,
                     venue, scheduled_lecture_time, topic_taught, learning_outcomes, recommendations)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id`
	if err := r.db.GetContext(ctx, &report.ID, query,
		report.ClassID, report.FacultyName, report.WeekOfReporting, report.DateOfLecture,
		report.CourseName, report.CourseCode, report.LecturerName, report.LecturerID,
		report.PresentStudents, report.RegisteredStudents,
		report.Venue, report.ScheduledLectureTime, report.TopicTaught,
		report.LearningOutcomes, report.Recommendations); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of the allow-listed update set and
// reports whether a row matched.
func (r *ReportRepository) Update(ctx context.Context, id int64, update models.ReportUpdate) (bool, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if update.ClassID != nil {
		add("class_id", *update.ClassID)
	}
	if update.FacultyName != nil {
		add("faculty_name", *update.FacultyName)
	}
	if update.WeekOfReporting != nil {
		add("week_of_reporting", *update.WeekOfReporting)
	}
	if update.DateOfLecture != nil {
		add("date_of_lecture", *update.DateOfLecture)
	}
	if update.CourseName != nil {
		add("course_name", *update.CourseName)
	}
	if update.CourseCode != nil {
		add("course_code", *update.CourseCode)
	}
	if update.LecturerName != nil {
		add("lecturer_name", *update.LecturerName)
	}
	if update.PresentStudents != nil {
		add("actual_number_of_students_present", *update.PresentStudents)
	}
	if update.RegisteredStudents != nil {
		add("total_number_of_registered_students", *update.RegisteredStudents)
	}
	if update.Venue != nil {
		add("venue", *update.Venue)
	}
	if update.ScheduledLectureTime != nil {
		add("scheduled_lecture_time", *update.ScheduledLectureTime)
	}
	if update.TopicTaught != nil {
		add("topic_taught", *update.TopicTaught)
	}
	if update.LearningOutcomes != nil {
		add("learning_outcomes", *update.LearningOutcomes)
	}
	if update.Recommendations != nil {
		add("recommendations", *update.Recommendations)
	}
	if len(sets) == 0 {
		return false, fmt.Errorf("update report: no fields provided")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE reports SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update report: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a report and reports whether a row matched.
func (r *ReportRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete report: %w", err)
	}
	return affected > 0, nil
}

// AppendFeedback appends a tagged feedback line to the report's feedback
// log inside a transaction. The row is locked for the read-modify-write
// so concurrent appends serialize instead of overwriting each other.
func (r *ReportRepository) AppendFeedback(ctx context.Context, id int64, tagged string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append feedback: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing sql.NullString
	if err = tx.GetContext(ctx, &existing, `SELECT feedback FROM reports WHERE id = $1 FOR UPDATE`, id); err != nil {
		return err
	}

	updated := tagged
	if existing.Valid && existing.String != "" {
		updated = existing.String + "\n" + tagged
	}

	if _, err = tx.ExecContext(ctx, `UPDATE reports SET feedback = $1 WHERE id = $2`, updated, id); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit append feedback: %w", err)
	}
	return nil
}

// ListForExport returns every report with the joined class columns and
// the raw feedback log. Export deliberately bypasses sanitization.
func (r *ReportRepository) ListForExport(ctx context.Context) ([]models.Report, error) {
	const query = `
SELECT ` + reviewerReportColumns + `
FROM reports r
LEFT JOIN classes c ON r.class_id = c.class_id
ORDER BY r.date_of_lecture DESC`
	var reports []models.Report
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list reports for export: %w", err)
	}
	return reports, nil
}

// ListAvailable returns the assignment picker rows, newest report first.
func (r *ReportRepository) ListAvailable(ctx context.Context) ([]models.AvailableReport, error) {
	const query = `
SELECT id, course_name, course_code, lecturer_id, date_of_lecture
FROM reports
ORDER BY id DESC`
	var reports []models.AvailableReport
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list available reports: %w", err)
	}
	return reports, nil
}
