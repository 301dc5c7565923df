package models

import "time"

// Banner is read-only promotional content seeded out of band.
type Banner struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle,omitempty"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
