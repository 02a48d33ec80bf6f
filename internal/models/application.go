package models

import "time"

// StatusPending is the status every application starts in.
const StatusPending = "pending"

// Application represents a user's application to a job
type Application struct {
	ID        int       `json:"id"`
	JobID     int       `json:"job_id"`
	UserID    int       `json:"user_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationSummary is a denormalized row used for the daily employer digest.
type ApplicationSummary struct {
	EmployerName  string
	EmployerEmail string
	JobTitle      string
	Applicant     string
	CreatedAt     time.Time
}
