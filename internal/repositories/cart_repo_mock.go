package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ivr/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the cart of userID.
func (r *MockCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	cart = cart.Clone()
	return &cart, nil
}

// Create stores a new cart. A second cart for the same user is rejected.
func (r *MockCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; ok {
		return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrDuplicate)
	}
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now()
	}
	r.carts[cart.UserID] = cart.Clone()
	return nil
}

// UpdateItems replaces the line sequence of an existing cart.
func (r *MockCartRepository) UpdateItems(ctx context.Context, userID string, items []models.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	cart.Items = append([]models.CartLine(nil), items...)
	r.carts[userID] = cart
	return nil
}

// DeleteByUserID removes the cart of userID if there is one.
func (r *MockCartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
