package repositories

import (
	"context"

	"ivr/internal/models"
)

// CartRepository defines the interface for cart data access. Carts are keyed by user ID.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	UpdateItems(ctx context.Context, userID string, items []models.CartLine) error
	// DeleteByUserID removes the user's cart. Deleting a missing cart is not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
