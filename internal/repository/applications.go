package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hirewire/jobboard/internal/models"
)

// CreateApplication creates a new application. Status comes from the
// database default.
func (r *Repository) CreateApplication(app *models.Application) error {
	query := `
		INSERT INTO applications (job_id, user_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at`
	err := r.db.QueryRow(query, app.JobID, app.UserID, app.Message).
		Scan(&app.ID, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindApplicationByID retrieves an application by id
func (r *Repository) FindApplicationByID(id int) (*models.Application, error) {
	app := &models.Application{}
	query := `
		SELECT id, job_id, user_id, message, status, created_at, updated_at
		FROM applications
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// FindAllApplications retrieves every application
func (r *Repository) FindAllApplications() ([]models.Application, error) {
	query := `
		SELECT id, job_id, user_id, message, status, created_at, updated_at
		FROM applications`
	return r.scanApplications(r.db.Query(query))
}

// FindApplicationsByUserID retrieves the applications submitted by one user
func (r *Repository) FindApplicationsByUserID(userID int) ([]models.Application, error) {
	query := `
		SELECT id, job_id, user_id, message, status, created_at, updated_at
		FROM applications
		WHERE user_id = $1`
	return r.scanApplications(r.db.Query(query, userID))
}

// UpdateApplicationMessage replaces the message of an application owned by
// the given user.
func (r *Repository) UpdateApplicationMessage(id, userID int, message string) (*models.Application, error) {
	app := &models.Application{}
	query := `
		UPDATE applications
		SET message = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING id, job_id, user_id, message, status, created_at, updated_at`
	err := r.db.QueryRow(query, message, id, userID).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// UpdateApplicationStatus sets the status of an application. The statement
// is keyed on the employer owning the referenced job.
func (r *Repository) UpdateApplicationStatus(id, employerID int, status string) (*models.Application, error) {
	app := &models.Application{}
	query := `
		UPDATE applications a
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		FROM jobs j
		WHERE a.id = $2 AND j.id = a.job_id AND j.employer_id = $3
		RETURNING a.id, a.job_id, a.user_id, a.message, a.status, a.created_at, a.updated_at`
	err := r.db.QueryRow(query, status, id, employerID).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return app, nil
}

// DeleteApplication removes an application owned by the given user.
// Deleting an application that is already gone is not an error.
func (r *Repository) DeleteApplication(id, userID int) error {
	query := `
		DELETE FROM applications
		WHERE id = $1 AND user_id = $2`
	if _, err := r.db.Exec(query, id, userID); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// ListApplicationsCreatedSince returns applications created after the given
// time joined with the job and the employer, for the daily digest.
func (r *Repository) ListApplicationsCreatedSince(since time.Time) ([]models.ApplicationSummary, error) {
	query := `
		SELECT e.username, e.email, j.title, u.username, a.created_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users e ON e.id = j.employer_id
		JOIN users u ON u.id = a.user_id
		WHERE a.created_at > $1
		ORDER BY e.email, a.created_at`
	rows, err := r.db.Query(query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query application digest: %w", err)
	}
	defer rows.Close()

	summaries := []models.ApplicationSummary{}
	for rows.Next() {
		var s models.ApplicationSummary
		if err := rows.Scan(&s.EmployerName, &s.EmployerEmail, &s.JobTitle, &s.Applicant, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application digest: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read application digest: %w", err)
	}
	return summaries, nil
}

func (r *Repository) scanApplications(rows *sql.Rows, err error) ([]models.Application, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}
