package services

import (
	"context"
	"errors"
	"fmt"

	"ivr/internal/models"
	"ivr/internal/repositories"
)

// CartService manages the per-user shopping cart. A cart that loses its last line is deleted.
type CartService struct {
	repo repositories.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository) *CartService {
	return &CartService{
		repo: repo,
	}
}

// AddItem merges item into the user's cart, creating the cart on first use.
// An existing line with the same itemId has item.Quantity added to it; anything else is appended.
// A merged line whose quantity falls to zero or below is removed, as in UpdateItemQuantity.
func (s *CartService) AddItem(ctx context.Context, userID string, item models.CartLine) (*models.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if item.ItemID == "" {
		return nil, fmt.Errorf("%w: item.itemId is required", ErrValidation)
	}

	cart, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartLine{item}}
		if err := s.repo.Create(ctx, cart); err != nil {
			return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
		}
		return cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}

	i := cart.LineIndex(item.ItemID)
	if i < 0 {
		cart.Items = append(cart.Items, item)
		return s.persist(ctx, cart)
	}
	cart.Items[i].Quantity += item.Quantity
	if cart.Items[i].Quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}
	return s.persist(ctx, cart)
}

// GetCart returns the user's cart, or the canonical empty cart when none is stored.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.EmptyCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// UpdateItemQuantity sets the quantity of one line. A quantity of zero or less removes the line,
// and removing the last line deletes the cart.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.LineIndex(itemID)
	if i < 0 {
		return nil, fmt.Errorf("item %s for user %s: %w", itemID, userID, ErrItemNotFound)
	}
	if quantity > 0 {
		cart.Items[i].Quantity = quantity
	} else {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}
	return s.persist(ctx, cart)
}

// RemoveItem drops every line for itemID. Removing an item that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.CartLine, 0, len(cart.Items))
	for _, line := range cart.Items {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(cart.Items) {
		return nil
	}
	cart.Items = kept
	_, err = s.persist(ctx, cart)
	return err
}

// ClearCart deletes the user's cart. Clearing a missing cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

func (s *CartService) load(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrCartNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// persist writes the cart's lines back, or deletes the cart when it has none left.
func (s *CartService) persist(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.IsEmpty() {
		if err := s.ClearCart(ctx, cart.UserID); err != nil {
			return nil, err
		}
		return models.EmptyCart(), nil
	}
	if err := s.repo.UpdateItems(ctx, cart.UserID, cart.Items); err != nil {
		return nil, fmt.Errorf("failed to update cart for user %s: %w", cart.UserID, err)
	}
	return cart, nil
}
