package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ivr/internal/models"
	"ivr/internal/repositories"
	"ivr/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	service := services.NewUserService(repositories.NewMockUserRepository())

	user := &models.User{Email: "amal@example.com", Name: "Amal"}
	require.NoError(t, service.CreateUser(ctx, user))
	assert.NotEmpty(t, user.ID)

	err := service.CreateUser(ctx, &models.User{Email: "amal@example.com", Name: "Someone Else"})
	assert.ErrorIs(t, err, services.ErrAlreadyExists)

	// Email matching is case-sensitive
	require.NoError(t, service.CreateUser(ctx, &models.User{Email: "Amal@example.com"}))

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_CreateUserRaceHitsStoreConstraint(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	user := &models.User{Email: "amal@example.com"}
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.Anything, user).Return(fmt.Errorf("user with email %s: %w", user.Email, repositories.ErrDuplicate)).Once()

	err := service.CreateUser(ctx, user)
	assert.ErrorIs(t, err, services.ErrAlreadyExists)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUserLookupFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	dbErr := errors.New("no reachable servers")
	mockRepo.On("GetByEmail", mock.Anything, "amal@example.com").Return(nil, dbErr).Once()

	err := service.CreateUser(context.Background(), &models.User{Email: "amal@example.com"})
	assert.ErrorIs(t, err, dbErr)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	service := services.NewUserService(repositories.NewMockUserRepository())

	user := &models.User{Email: "amal@example.com", Name: "Amal"}
	require.NoError(t, service.CreateUser(ctx, user))

	found, err := service.GetUserByEmail(ctx, "amal@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = service.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, service.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, service.DeleteUser(ctx, user.ID), services.ErrNotFound)
}
