package services

import (
	"context"
	"fmt"

	"ivr/internal/models"
	"ivr/internal/repositories"
)

// StatsService builds the admin dashboard summary.
type StatsService struct {
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository) *StatsService {
	return &StatsService{userRepo: userRepo, orderRepo: orderRepo}
}

// AdminStats counts users and orders and sums order totals.
func (s *StatsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	sales, err := s.orderRepo.TotalSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	return &models.AdminStats{TotalUsers: users, TotalSales: sales, TotalOrders: orders}, nil
}
