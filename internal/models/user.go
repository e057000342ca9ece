package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleLecturer UserRole = "lecturer"
	RolePL       UserRole = "pl"
	RolePRL      UserRole = "prl"
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64    `db:"id" json:"id"`
	Username     string   `db:"username" json:"username"`
	PasswordHash string   `db:"password" json:"-"`
	Role         UserRole `db:"role" json:"role"`
}

// StudentRef is the minimal roster entry lecturers pick a rating target from.
type StudentRef struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
