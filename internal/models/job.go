package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job represents a job posting created by an employer
type Job struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Salary      decimal.Decimal `json:"salary"`
	Category    string          `json:"category"`
	EmployerID  int             `json:"employer_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
