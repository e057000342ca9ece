package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luct-faculty/reporting-api/internal/models"
)

func TestCreateStudentRatingLeavesLectureNull(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectQuery("INSERT INTO ratings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rating := &models.Rating{StudentID: 7, LecturerID: 4, Rating: 5}
	err := repo.CreateStudentRating(context.Background(), rating)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rating.ID)
	assert.Nil(t, rating.LectureID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLectureRatingResolvesLecturer(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT lecturer_id FROM reports").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"lecturer_id"}).AddRow(int64(4)))
	mock.ExpectQuery("INSERT INTO ratings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	rating, err := repo.CreateLectureRating(context.Background(), 7, 12, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rating.LecturerID)
	require.NotNil(t, rating.LectureID)
	assert.Equal(t, int64(12), *rating.LectureID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLectureRatingNullLecturer(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT lecturer_id FROM reports").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"lecturer_id"}).AddRow(nil))
	mock.ExpectRollback()

	_, err := repo.CreateLectureRating(context.Background(), 7, 12, 4, nil)
	require.ErrorIs(t, err, ErrLectureUnrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRatingsNewestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "lecturer_id", "lecture_id", "rating", "comment", "created_at", "course_name", "student_name", "lecturer_name"}).
		AddRow(int64(2), int64(7), int64(4), int64(12), 4, "clear", time.Now(), "Web Development", "student1", "lecturer1")
	mock.ExpectQuery("SELECT r.id, r.student_id, r.lecturer_id, r.lecture_id, r.rating, r.comment, r.created_at").
		WillReturnRows(rows)

	ratings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "student1", *ratings[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
