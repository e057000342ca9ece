package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luct-faculty/reporting-api/internal/models"
)

func TestListReportsStudentProjection(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "lecturer_name", "date_of_lecture", "topic_taught"}).
		AddRow(int64(1), "lecturer1", now, "Goroutines")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT r.id, r.lecturer_name, r.date_of_lecture, r.topic_taught FROM reports r LEFT JOIN classes c ON r.class_id = c.class_id ORDER BY r.date_of_lecture DESC")).
		WillReturnRows(rows)

	reports, err := repo.List(context.Background(), models.RoleStudent, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	// Columns outside the student projection stay zero-valued.
	assert.Nil(t, reports[0].Feedback)
	assert.Nil(t, reports[0].CourseCode)
	assert.Equal(t, "lecturer1", *reports[0].LecturerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReportsReviewerProjectionIncludesFeedback(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "faculty_name", "class_id", "class_name", "week_of_reporting",
		"date_of_lecture", "course_name", "course_code", "lecturer_name",
		"actual_number_of_students_present", "total_number_of_registered_students",
		"venue", "scheduled_lecture_time", "topic_taught", "learning_outcomes",
		"recommendations", "lecturer_id", "class_venue", "feedback",
	}).AddRow(
		int64(1), "FICT", int64(3), "BSCIT-Y2", "Week 6",
		now, "Web Development", "DIWA2110", "lecturer1",
		28, 35,
		"Room 5", "09:00", "Express routing", "REST basics",
		"More lab time", int64(2), "Block B", "[PRL]: solid delivery",
	)
	mock.ExpectQuery("SELECT r.id, r.faculty_name, .+ FROM reports r LEFT JOIN classes c ON r.class_id = c.class_id ORDER BY r.date_of_lecture DESC").
		WillReturnRows(rows)

	reports, err := repo.List(context.Background(), models.RolePRL, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "[PRL]: solid delivery", *reports[0].Feedback)
	assert.Equal(t, "Block B", *reports[0].ClassVenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReportsSearchFilter(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"id", "lecturer_name", "date_of_lecture", "topic_taught"})
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (LOWER(r.course_name) LIKE $1 OR LOWER(r.lecturer_name) LIKE $1)")).
		WithArgs("%web%").
		WillReturnRows(rows)

	_, err := repo.List(context.Background(), models.RoleStudent, models.ReportFilter{Search: "Web"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReport(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery("INSERT INTO reports").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	classID := int64(3)
	topic := "Channels"
	report := &models.Report{ClassID: &classID, DateOfLecture: time.Now(), TopicTaught: &topic}
	err := repo.Create(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, int64(7), report.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReportBuildsOnlyProvidedFields(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	topic := "Revised topic"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reports SET topic_taught = $1 WHERE id = $2")).
		WithArgs(topic, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Update(context.Background(), 4, models.ReportUpdate{TopicTaught: &topic})
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReportUnknownID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	topic := "Revised topic"
	mock.ExpectExec("UPDATE reports SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Update(context.Background(), 999, models.ReportUpdate{TopicTaught: &topic})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAppendFeedbackFirstEntry(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT feedback FROM reports WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"feedback"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reports SET feedback = $1 WHERE id = $2")).
		WithArgs("[PRL]: first note", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AppendFeedback(context.Background(), 5, "[PRL]: first note")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendFeedbackPreservesOrder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT feedback FROM reports").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"feedback"}).AddRow("[PRL]: A"))
	mock.ExpectExec("UPDATE reports SET feedback").
		WithArgs("[PRL]: A\n[PRL]: B", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AppendFeedback(context.Background(), 5, "[PRL]: B")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendFeedbackMissingReportRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT feedback FROM reports").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"feedback"}))
	mock.ExpectRollback()

	err := repo.AppendFeedback(context.Background(), 404, "[PRL]: lost")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailableReports(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "course_name", "course_code", "lecturer_id", "date_of_lecture"}).
		AddRow(int64(2), "Web Development", "DIWA2110", int64(4), now).
		AddRow(int64(1), "Databases", "DBS2104", int64(4), now)
	mock.ExpectQuery("SELECT id, course_name, course_code, lecturer_id, date_of_lecture FROM reports ORDER BY id DESC").
		WillReturnRows(rows)

	reports, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, int64(2), reports[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
