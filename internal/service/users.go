package service

import "github.com/hirewire/jobboard/internal/models"

// GetUser retrieves a user by id
func (s *Service) GetUser(id int) (*models.User, error) {
	return s.store.FindUserByID(id)
}
