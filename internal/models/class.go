package models

import "time"

// ClassStatus tracks the admin review state of a class listing.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approve"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class is a course offered by an instructor. Seats and TotalEnrolled are
// mutated only by the payment settlement, never by class CRUD.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Image           string      `db:"image" json:"image,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructorName"`
	InstructorEmail string      `db:"instructor_email" json:"instructorEmail"`
	Seats           int         `db:"seats" json:"seats"`
	Price           float64     `db:"price" json:"price"`
	TotalEnrolled   int         `db:"total_enrolled" json:"totalEnrolled"`
	Status          ClassStatus `db:"status" json:"status"`
	Feedback        *string     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
