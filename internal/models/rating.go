package models

import "time"

// Rating is a directional score plus comment. LectureID is null when a
// lecturer rates a student generically; it carries the rated report id
// when a student rates a delivered lecture. Rows are append-only.
type Rating struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	LecturerID int64     `db:"lecturer_id" json:"lecturer_id"`
	LectureID  *int64    `db:"lecture_id" json:"lecture_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    *string   `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RatingDetail joins usernames and the rated course for display.
type RatingDetail struct {
	Rating
	CourseName   *string `db:"course_name" json:"course_name"`
	StudentName  *string `db:"student_name" json:"student_name"`
	LecturerName *string `db:"lecturer_name" json:"lecturer_name"`
}

// RateableLecture is what students pick a rating target from.
type RateableLecture struct {
	ID           int64   `db:"id" json:"id"`
	CourseName   *string `db:"course_name" json:"course_name"`
	LecturerID   int64   `db:"lecturer_id" json:"lecturer_id"`
	LecturerName string  `db:"lecturer_name" json:"lecturer_name"`
}
