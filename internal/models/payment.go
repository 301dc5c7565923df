package models

import "time"

// PaymentHistory is an immutable record of a completed payment.
type PaymentHistory struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	Amount        float64   `db:"amount" json:"amount"`
	ClassID       string    `db:"class_id" json:"classId"`
	ClassName     string    `db:"class_name" json:"className"`
	PaidAt        time.Time `db:"paid_at" json:"paidAt"`
}

// EnrolledClass is an immutable record linking a student to a paid class.
type EnrolledClass struct {
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	InstructorEmail string    `db:"instructor_email" json:"instructorEmail"`
	ClassID         string    `db:"class_id" json:"classId"`
	ClassName       string    `db:"class_name" json:"className"`
	EnrolledAt      time.Time `db:"enrolled_at" json:"enrolledAt"`
}

// PaymentResult aggregates the outcome of each settlement sub-operation so a
// caller can see exactly what one run applied.
type PaymentResult struct {
	PaymentID         string `json:"paymentId"`
	EnrollmentID      string `json:"enrollmentId"`
	SelectionsRemoved int64  `json:"selectionsRemoved"`
	ClassUpdated      bool   `json:"classUpdated"`
	InstructorUpdated bool   `json:"instructorUpdated"`
}
