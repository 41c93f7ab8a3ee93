package models

// Role identifies what a user account is allowed to do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account in the system.
// It maps to the `users` table in SQLite. Passwords are stored and compared
// as-is for compatibility with existing data files; rotate the default admin
// credential in any real deployment.
type User struct {
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Role     Role   `db:"role" json:"role"`
}
