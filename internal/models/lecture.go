package models

import "time"

// Lecture is a canonical scheduled-session row materialized from a
// report once its course code resolves to a real course.
type Lecture struct {
	ID            int64     `db:"id" json:"id"`
	ReportID      *int64    `db:"report_id" json:"report_id"`
	CourseID      int64     `db:"course_id" json:"course_id"`
	LecturerID    int64     `db:"lecturer_id" json:"lecturer_id"`
	DateOfLecture time.Time `db:"date_of_lecture" json:"date_of_lecture"`
	CourseName    *string   `db:"course_name" json:"course_name"`
}
