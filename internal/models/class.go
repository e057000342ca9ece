package models

import "time"

// Class represents a taught class. Reports reference it by class_id.
type Class struct {
	ClassID   int64     `db:"class_id" json:"class_id"`
	ClassName string    `db:"class_name" json:"class_name"`
	Venue     *string   `db:"venue" json:"venue"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassFilter captures search criteria for listing classes.
type ClassFilter struct {
	Search string
}
