package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hirewire/jobboard/internal/models"
	"github.com/hirewire/jobboard/internal/repository"
	"github.com/hirewire/jobboard/internal/token"
)

// Register creates a new user with a hashed password and returns the user
// together with a freshly issued token.
func (s *Service) Register(username, email, password, role string) (*models.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, signed, nil
}

// Login authenticates a user and returns a bearer token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return signed, nil
}

// ResolveToken maps a raw bearer token to the user it identifies. Every
// failure mode collapses into ErrUnauthenticated.
func (s *Service) ResolveToken(raw string) (*models.User, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	email, err := s.tokens.Validate(raw)
	if errors.Is(err, token.ErrInvalidToken) {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown subject", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
