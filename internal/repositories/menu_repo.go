package repositories

import (
	"context"

	"ivr/internal/models"
)

// MenuRepository defines the interface for menu data access.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
