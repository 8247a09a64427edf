package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ivr/internal/models"

	"github.com/google/uuid"
)

// MockMenuRepository is an in-memory implementation of MenuRepository.
type MockMenuRepository struct {
	items []models.MenuItem
	mu    sync.RWMutex
}

// NewMockMenuRepository creates a new instance of MockMenuRepository.
func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{}
}

// GetAll returns all menu items.
func (r *MockMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]models.MenuItem, 0, len(r.items)), r.items...), nil
}

// Create adds a new menu item.
func (r *MockMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items = append(r.items, *item)
	return nil
}

// Update applies a partial update to an existing menu item.
func (r *MockMenuRepository) Update(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			update.Apply(&r.items[i])
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("menu item with ID %s not found for update: %w", id, ErrNotFound)
}

// Delete removes a menu item by its ID.
func (r *MockMenuRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("menu item with ID %s not found for deletion: %w", id, ErrNotFound)
}
