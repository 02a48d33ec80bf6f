package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/models"
)

// CreateJob creates a new job posting in the database
func (r *Repository) CreateJob(job *models.Job) error {
	query := `
		INSERT INTO jobs (title, description, location, salary, category, employer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, job.Title, job.Description, job.Location, job.Salary, job.Category, job.EmployerID).
		Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindJobByID retrieves a job by id
func (r *Repository) FindJobByID(id int) (*models.Job, error) {
	job := &models.Job{}
	query := `
		SELECT id, title, description, location, salary, category, employer_id, created_at, updated_at
		FROM jobs
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&job.ID, &job.Title, &job.Description, &job.Location,
		&job.Salary, &job.Category, &job.EmployerID, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return job, nil
}

// FindAllJobs retrieves every job posting
func (r *Repository) FindAllJobs() ([]models.Job, error) {
	query := `
		SELECT id, title, description, location, salary, category, employer_id, created_at, updated_at
		FROM jobs`
	return r.scanJobs(r.db.Query(query))
}

// FindJobsByEmployerID retrieves the jobs created by one user
func (r *Repository) FindJobsByEmployerID(employerID int) ([]models.Job, error) {
	query := `
		SELECT id, title, description, location, salary, category, employer_id, created_at, updated_at
		FROM jobs
		WHERE employer_id = $1`
	return r.scanJobs(r.db.Query(query, employerID))
}

// UpdateJob replaces the mutable fields of a job. The statement is keyed on
// both id and employer_id so a job deleted between the ownership check and
// the write surfaces as ErrNotFound instead of silently succeeding.
func (r *Repository) UpdateJob(job *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $1,
		    description = $2,
		    location = $3,
		    salary = $4,
		    category = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND employer_id = $7
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		job.Title, job.Description, job.Location, job.Salary, job.Category,
		job.ID, job.EmployerID).
		Scan(&job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// DeleteJob removes a job owned by the given employer. Deleting a job that
// is already gone is not an error.
func (r *Repository) DeleteJob(id, employerID int) error {
	query := `
		DELETE FROM jobs
		WHERE id = $1 AND employer_id = $2`
	if _, err := r.db.Exec(query, id, employerID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func (r *Repository) scanJobs(rows *sql.Rows, err error) ([]models.Job, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Description, &job.Location,
			&job.Salary, &job.Category, &job.EmployerID, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
