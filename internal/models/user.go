package models

import "time"

// UserRole represents the available roles. New sign-ins start as RoleNone;
// only an admin action promotes a user.
type UserRole string

const (
	RoleNone       UserRole = "none"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// User represents an application user stored in the users table.
type User struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	Name          string    `db:"name" json:"name"`
	PhotoURL      string    `db:"photo_url" json:"photoURL,omitempty"`
	Role          UserRole  `db:"role" json:"role"`
	TotalStudents int       `db:"total_students" json:"totalStudents"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RoleFlags is the payload of the role-lookup endpoint.
type RoleFlags struct {
	Admin      bool `json:"admin"`
	Instructor bool `json:"instructor"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
