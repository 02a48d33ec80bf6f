package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/models"
	"github.com/hirewire/jobboard/internal/token"
)

var (
	// ErrUnauthenticated is returned when a bearer token cannot be
	// resolved to a user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. The two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the acting user does not own the
	// resource being mutated.
	ErrForbidden = errors.New("forbidden")
)

// Store is the persistence boundary the service depends on. It is satisfied
// by repository.Repository.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int) (*models.User, error)

	CreateJob(job *models.Job) error
	FindJobByID(id int) (*models.Job, error)
	FindAllJobs() ([]models.Job, error)
	FindJobsByEmployerID(employerID int) ([]models.Job, error)
	UpdateJob(job *models.Job) error
	DeleteJob(id, employerID int) error

	CreateApplication(app *models.Application) error
	FindApplicationByID(id int) (*models.Application, error)
	FindAllApplications() ([]models.Application, error)
	FindApplicationsByUserID(userID int) ([]models.Application, error)
	UpdateApplicationMessage(id, userID int, message string) (*models.Application, error)
	UpdateApplicationStatus(id, employerID int, status string) (*models.Application, error)
	DeleteApplication(id, userID int) error
	ListApplicationsCreatedSince(since time.Time) ([]models.ApplicationSummary, error)
}

// Notifier delivers best-effort email notifications. A nil Notifier
// disables them.
type Notifier interface {
	ApplicationReceived(employer *models.User, job *models.Job, applicant *models.User) error
}

// Service handles business logic
type Service struct {
	store    Store
	tokens   *token.Service
	notifier Notifier
	log      *logrus.Logger
}

// NewService initializes a new service. notifier may be nil.
func NewService(store Store, tokens *token.Service, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{store: store, tokens: tokens, notifier: notifier, log: log}
}
