package repositories

import (
	"context"

	"ivr/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns every order in storage order.
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Count(ctx context.Context) (int64, error)
	// TotalSales sums the total of every order.
	TotalSales(ctx context.Context) (float64, error)
	// Orders are never deleted.
}
