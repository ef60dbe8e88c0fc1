package models

import "time"

// Submission is one customer's product-submission form entry.
type Submission struct {
	ID           int              `json:"id" db:"id"`
	Name         string           `json:"name" form:"name" db:"name"`
	Contact      string           `json:"contact" form:"contact" db:"contact"`
	Email        string           `json:"email" form:"email" db:"email"`
	ProductLinks []string         `json:"product_links"`
	ImageURLs    []string         `json:"image_urls"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	Status       SubmissionStatus `json:"status" db:"status"`
}

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusNotified SubmissionStatus = "notified"
	StatusFailed   SubmissionStatus = "failed"
)
