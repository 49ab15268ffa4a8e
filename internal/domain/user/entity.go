package user

import "time"

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}
