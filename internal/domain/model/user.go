package model

import "time"

// UserRole controls access to administrative operations.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User describes a registered customer or administrator.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Phone        string
	Role         UserRole
	Blocked      bool
	CreatedAt    time.Time
}

// IsAdmin reports whether the user may perform administrative operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
