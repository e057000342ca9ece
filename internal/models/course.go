package models

// Course is a canonical course record. Code is the join key report
// course codes are matched against, case and whitespace insensitively.
type Course struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}
