package services

import (
	"context"
	"fmt"

	"ivr/internal/models"
	"ivr/internal/repositories"
)

// MenuService handles business logic related to the menu.
type MenuService struct {
	repo repositories.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetMenu retrieves all menu items.
func (s *MenuService) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return nonNil(items), nil
}

// CreateMenuItem stores a new menu item.
func (s *MenuService) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem applies the supplied fields to the item with the given ID.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	item, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item %s: %w", id, err)
	}
	return item, nil
}

// DeleteMenuItem deletes a menu item by its ID.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item %s: %w", id, err)
	}
	return nil
}
