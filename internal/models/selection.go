package models

import "time"

// SelectedClass is a student's pending, unpaid intent to take a class.
// It is removed either by the student or by the payment settlement.
type SelectedClass struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"classId"`
	Email     string    `db:"email" json:"email"`
	ClassName string    `db:"class_name" json:"className"`
	Image     string    `db:"image" json:"image,omitempty"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
