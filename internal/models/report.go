package models

import "time"

// Report is a lecturer's record of one delivered lecture session. Most
// columns are nullable free text; course_code is unstructured and only
// resolves to a Course row during lecture assignment. ClassName and
// ClassVenue are joined from classes and only populated by queries that
// select them.
type Report struct {
	ID                   int64     `db:"id" json:"id"`
	ClassID              *int64    `db:"class_id" json:"class_id"`
	ClassName            *string   `db:"class_name" json:"class_name"`
	ClassVenue           *string   `db:"class_venue" json:"class_venue"`
	FacultyName          *string   `db:"faculty_name" json:"faculty_name"`
	WeekOfReporting      *string   `db:"week_of_reporting" json:"week_of_reporting"`
	DateOfLecture        time.Time `db:"date_of_lecture" json:"date_of_lecture"`
	CourseName           *string   `db:"course_name" json:"course_name"`
	CourseCode           *string   `db:"course_code" json:"course_code"`
	LecturerName         *string   `db:"lecturer_name" json:"lecturer_name"`
	LecturerID           *int64    `db:"lecturer_id" json:"lecturer_id"`
	PresentStudents      *int      `db:"actual_number_of_students_present" json:"actual_number_of_students_present"`
	RegisteredStudents   *int      `db:"total_number_of_registered_students" json:"total_number_of_registered_students"`
	Venue                *string   `db:"venue" json:"venue"`
	ScheduledLectureTime *string   `db:"scheduled_lecture_time" json:"scheduled_lecture_time"`
	TopicTaught          *string   `db:"topic_taught" json:"topic_taught"`
	LearningOutcomes     *string   `db:"learning_outcomes" json:"learning_outcomes"`
	Recommendations      *string   `db:"recommendations" json:"recommendations"`
	Feedback             *string   `db:"feedback" json:"feedback"`
}

// ReportUpdate carries the allow-listed set of mutable report columns
// for partial updates. Nil fields are left untouched.
type ReportUpdate struct {
	ClassID              *int64
	FacultyName          *string
	WeekOfReporting      *string
	DateOfLecture        *time.Time
	CourseName           *string
	CourseCode           *string
	LecturerName         *string
	PresentStudents      *int
	RegisteredStudents   *int
	Venue                *string
	ScheduledLectureTime *string
	TopicTaught          *string
	LearningOutcomes     *string
	Recommendations      *string
}

// IsEmpty reports whether the update carries no fields.
func (u ReportUpdate) IsEmpty() bool {
	return u.ClassID == nil && u.FacultyName == nil && u.WeekOfReporting == nil &&
		u.DateOfLecture == nil && u.CourseName == nil && u.CourseCode == nil &&
		u.LecturerName == nil && u.PresentStudents == nil && u.RegisteredStudents == nil &&
		u.Venue == nil && u.ScheduledLectureTime == nil && u.TopicTaught == nil &&
		u.LearningOutcomes == nil && u.Recommendations == nil
}

// ReportFilter captures search criteria for report listings.
type ReportFilter struct {
	Search string
}

// StudentReportView is the minimal projection students receive, just
// enough to pick a rating target.
type StudentReportView struct {
	ID            int64     `json:"id"`
	LecturerName  *string   `json:"lecturer_name"`
	DateOfLecture time.Time `json:"date_of_lecture"`
	TopicTaught   *string   `json:"topic_taught"`
}

// LecturerReportView is the full structured row without the feedback
// column.
type LecturerReportView struct {
	ID                   int64     `json:"id"`
	ClassID              *int64    `json:"class_id"`
	ClassName            *string   `json:"class_name"`
	FacultyName          *string   `json:"faculty_name"`
	WeekOfReporting      *string   `json:"week_of_reporting"`
	DateOfLecture        time.Time `json:"date_of_lecture"`
	CourseName           *string   `json:"course_name"`
	CourseCode           *string   `json:"course_code"`
	LecturerName         *string   `json:"lecturer_name"`
	LecturerID           *int64    `json:"lecturer_id"`
	PresentStudents      *int      `json:"actual_number_of_students_present"`
	RegisteredStudents   *int      `json:"total_number_of_registered_students"`
	Venue                *string   `json:"venue"`
	ScheduledLectureTime *string   `json:"scheduled_lecture_time"`
	TopicTaught          *string   `json:"topic_taught"`
	LearningOutcomes     *string   `json:"learning_outcomes"`
	Recommendations      *string   `json:"recommendations"`
}

// ReviewerReportView is the PL/PRL projection: the full row plus the
// joined class venue and the sanitized feedback log.
type ReviewerReportView struct {
	LecturerReportView
	ClassVenue *string `json:"class_venue"`
	Feedback   *string `json:"feedback"`
}

// AvailableReport feeds the lecture-assignment picker.
type AvailableReport struct {
	ID            int64     `db:"id" json:"id"`
	CourseName    *string   `db:"course_name" json:"course_name"`
	CourseCode    *string   `db:"course_code" json:"course_code"`
	LecturerID    *int64    `db:"lecturer_id" json:"lecturer_id"`
	DateOfLecture time.Time `db:"date_of_lecture" json:"date_of_lecture"`
}
