// Package memstore provides an in-memory store used by tests in place of
// the Postgres-backed repository. Semantics mirror the repository: sentinel
// errors, conditional ownership-keyed writes, idempotent deletes.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hirewire/jobboard/internal/models"
	"github.com/hirewire/jobboard/internal/repository"
)

// Store is an in-memory implementation of the service persistence boundary.
type Store struct {
	mu     sync.Mutex
	users  map[int]*models.User
	jobs   map[int]*models.Job
	apps   map[int]*models.Application
	nextID int
}

// New initializes an empty store
func New() *Store {
	return &Store{
		users:  map[int]*models.User{},
		jobs:   map[int]*models.Job{},
		apps:   map[int]*models.Application{},
		nextID: 1,
	}
}

func (s *Store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) FindUserByID(id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) CreateJob(job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = s.id()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *Store) FindJobByID(id int) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *Store) FindAllJobs() ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := []models.Job{}
	for _, j := range s.jobs {
		jobs = append(jobs, *j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs, nil
}

func (s *Store) FindJobsByEmployerID(employerID int) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := []models.Job{}
	for _, j := range s.jobs {
		if j.EmployerID == employerID {
			jobs = append(jobs, *j)
		}
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs, nil
}

func (s *Store) UpdateJob(job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.jobs[job.ID]
	if !ok || existing.EmployerID != job.EmployerID {
		return repository.ErrNotFound
	}
	existing.Title = job.Title
	existing.Description = job.Description
	existing.Location = job.Location
	existing.Salary = job.Salary
	existing.Category = job.Category
	existing.UpdatedAt = laterOf(time.Now(), existing.UpdatedAt.Add(time.Millisecond))
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *Store) DeleteJob(id, employerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok && j.EmployerID == employerID {
		delete(s.jobs, id)
	}
	return nil
}

func (s *Store) CreateApplication(app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[app.JobID]; !ok {
		return fmt.Errorf("foreign key violation: job %d", app.JobID)
	}
	if _, ok := s.users[app.UserID]; !ok {
		return fmt.Errorf("foreign key violation: user %d", app.UserID)
	}
	app.ID = s.id()
	app.Status = models.StatusPending
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	s.apps[app.ID] = &cp
	return nil
}

func (s *Store) FindApplicationByID(id int) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) FindAllApplications() ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := []models.Application{}
	for _, a := range s.apps {
		apps = append(apps, *a)
	}
	sort.Slice(apps, func(i, k int) bool { return apps[i].ID < apps[k].ID })
	return apps, nil
}

func (s *Store) FindApplicationsByUserID(userID int) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := []models.Application{}
	for _, a := range s.apps {
		if a.UserID == userID {
			apps = append(apps, *a)
		}
	}
	sort.Slice(apps, func(i, k int) bool { return apps[i].ID < apps[k].ID })
	return apps, nil
}

func (s *Store) UpdateApplicationMessage(id, userID int, message string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	a.Message = message
	a.UpdatedAt = laterOf(time.Now(), a.UpdatedAt.Add(time.Millisecond))
	cp := *a
	return &cp, nil
}

func (s *Store) UpdateApplicationStatus(id, employerID int, status string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	j, ok := s.jobs[a.JobID]
	if !ok || j.EmployerID != employerID {
		return nil, repository.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = laterOf(time.Now(), a.UpdatedAt.Add(time.Millisecond))
	cp := *a
	return &cp, nil
}

func (s *Store) DeleteApplication(id, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.apps[id]; ok && a.UserID == userID {
		delete(s.apps, id)
	}
	return nil
}

func (s *Store) ListApplicationsCreatedSince(since time.Time) ([]models.ApplicationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summaries := []models.ApplicationSummary{}
	for _, a := range s.apps {
		if !a.CreatedAt.After(since) {
			continue
		}
		j, ok := s.jobs[a.JobID]
		if !ok {
			continue
		}
		employer, ok := s.users[j.EmployerID]
		if !ok {
			continue
		}
		applicant, ok := s.users[a.UserID]
		if !ok {
			continue
		}
		summaries = append(summaries, models.ApplicationSummary{
			EmployerName:  employer.Username,
			EmployerEmail: employer.Email,
			JobTitle:      j.Title,
			Applicant:     applicant.Username,
			CreatedAt:     a.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, k int) bool {
		if summaries[i].EmployerEmail != summaries[k].EmployerEmail {
			return summaries[i].EmployerEmail < summaries[k].EmployerEmail
		}
		return summaries[i].CreatedAt.Before(summaries[k].CreatedAt)
	})
	return summaries, nil
}

// laterOf keeps updated_at strictly increasing even when two writes land
// within clock resolution.
func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
