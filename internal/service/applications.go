package service

import (
	"github.com/hirewire/jobboard/internal/models"
)

// CreateApplication submits an application by the acting user against a job.
// When a notifier is configured the employer is mailed in the background;
// delivery failures never fail the request.
func (s *Service) CreateApplication(user *models.User, jobID int, message string) (*models.Application, error) {
	app := &models.Application{
		JobID:   jobID,
		UserID:  user.ID,
		Message: message,
	}
	if err := s.store.CreateApplication(app); err != nil {
		return nil, err
	}
	s.log.Infof("Application created: %d by user %d for job %d", app.ID, user.ID, jobID)

	if s.notifier != nil {
		go s.notifyApplicationReceived(app, user)
	}
	return app, nil
}

func (s *Service) notifyApplicationReceived(app *models.Application, applicant *models.User) {
	job, err := s.store.FindJobByID(app.JobID)
	if err != nil {
		s.log.Errorf("Failed to load job %d for notification: %v", app.JobID, err)
		return
	}
	employer, err := s.store.FindUserByID(job.EmployerID)
	if err != nil {
		s.log.Errorf("Failed to load employer %d for notification: %v", job.EmployerID, err)
		return
	}
	if err := s.notifier.ApplicationReceived(employer, job, applicant); err != nil {
		s.log.Errorf("Failed to notify employer %s: %v", employer.Email, err)
	}
}

// GetApplication retrieves a single application
func (s *Service) GetApplication(id int) (*models.Application, error) {
	return s.store.FindApplicationByID(id)
}

// ListApplications retrieves every application
func (s *Service) ListApplications() ([]models.Application, error) {
	return s.store.FindAllApplications()
}

// ListApplicationsByUser retrieves the applications submitted by one user
func (s *Service) ListApplicationsByUser(userID int) ([]models.Application, error) {
	return s.store.FindApplicationsByUserID(userID)
}

// UpdateApplication replaces the message of an application. Only the
// applicant who submitted it may update.
func (s *Service) UpdateApplication(user *models.User, id int, message string) (*models.Application, error) {
	existing, err := s.store.FindApplicationByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != user.ID {
		return nil, ErrForbidden
	}

	app, err := s.store.UpdateApplicationMessage(id, user.ID, message)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Application updated: %d by user %d", id, user.ID)
	return app, nil
}

// UpdateApplicationStatus sets the status of an application. Only the
// employer owning the referenced job may change it.
func (s *Service) UpdateApplicationStatus(user *models.User, id int, status string) (*models.Application, error) {
	existing, err := s.store.FindApplicationByID(id)
	if err != nil {
		return nil, err
	}
	job, err := s.store.FindJobByID(existing.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != user.ID {
		return nil, ErrForbidden
	}

	app, err := s.store.UpdateApplicationStatus(id, user.ID, status)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Application %d status set to %q by user %d", id, status, user.ID)
	return app, nil
}

// DeleteApplication removes an application. Only the applicant who
// submitted it may delete.
func (s *Service) DeleteApplication(user *models.User, id int) error {
	existing, err := s.store.FindApplicationByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != user.ID {
		return ErrForbidden
	}

	if err := s.store.DeleteApplication(id, user.ID); err != nil {
		return err
	}
	s.log.Infof("Application deleted: %d by user %d", id, user.ID)
	return nil
}
