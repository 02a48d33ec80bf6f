package service

import (
	"github.com/shopspring/decimal"

	"github.com/hirewire/jobboard/internal/models"
)

// JobInput carries the mutable fields of a job posting
type JobInput struct {
	Title       string
	Description string
	Location    string
	Salary      decimal.Decimal
	Category    string
}

// CreateJob creates a job posting owned by the acting user
func (s *Service) CreateJob(user *models.User, in JobInput) (*models.Job, error) {
	job := &models.Job{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Salary:      in.Salary,
		Category:    in.Category,
		EmployerID:  user.ID,
	}
	if err := s.store.CreateJob(job); err != nil {
		return nil, err
	}
	s.log.Infof("Job created: %d by user %d", job.ID, user.ID)
	return job, nil
}

// GetJob retrieves a single job posting
func (s *Service) GetJob(id int) (*models.Job, error) {
	return s.store.FindJobByID(id)
}

// ListJobs retrieves every job posting
func (s *Service) ListJobs() ([]models.Job, error) {
	return s.store.FindAllJobs()
}

// ListJobsByEmployer retrieves the jobs created by one user
func (s *Service) ListJobsByEmployer(userID int) ([]models.Job, error) {
	return s.store.FindJobsByEmployerID(userID)
}

// UpdateJob replaces the mutable fields of a job. Only the owning employer
// may update; the conditional write keyed on the owner keeps a concurrent
// delete from resurrecting the row.
func (s *Service) UpdateJob(user *models.User, jobID int, in JobInput) (*models.Job, error) {
	existing, err := s.store.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if existing.EmployerID != user.ID {
		return nil, ErrForbidden
	}

	job := &models.Job{
		ID:          jobID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Salary:      in.Salary,
		Category:    in.Category,
		EmployerID:  user.ID,
	}
	if err := s.store.UpdateJob(job); err != nil {
		return nil, err
	}
	s.log.Infof("Job updated: %d by user %d", jobID, user.ID)
	return job, nil
}

// DeleteJob removes a job. Only the owning employer may delete.
func (s *Service) DeleteJob(user *models.User, jobID int) error {
	existing, err := s.store.FindJobByID(jobID)
	if err != nil {
		return err
	}
	if existing.EmployerID != user.ID {
		return ErrForbidden
	}

	if err := s.store.DeleteJob(jobID, user.ID); err != nil {
		return err
	}
	s.log.Infof("Job deleted: %d by user %d", jobID, user.ID)
	return nil
}
