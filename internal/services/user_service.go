package services

import (
	"context"
	"errors"
	"fmt"

	"ivr/internal/models"
	"ivr/internal/repositories"
)

// UserService handles the user registry. Email is the deduplication key.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// CreateUser stores user unless another user already has the same email.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	existing, err := s.repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		return fmt.Errorf("email '%s': %w", user.Email, ErrAlreadyExists)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up user %s: %w", user.Email, err)
	}

	// The store enforces the same rule for requests racing past the check above.
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a single user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return nonNil(users), nil
}

// DeleteUser deletes a user by ID.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
