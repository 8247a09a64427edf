package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ivr/internal/models"
	"ivr/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Routing keys of the order events.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusUpdated = "order.status_updated"
)

// EventPublisher sends a domain event to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// PlaceOrderInput carries the checkout fields. Optional pointers are stored only when set and non-zero.
type PlaceOrderInput struct {
	UserID          string            `json:"userId"`
	Items           []models.CartLine `json:"items"`
	Total           float64           `json:"total"`
	Type            string            `json:"type"`
	PaymentMethod   string            `json:"paymentMethod"`
	MobileNumber    string            `json:"mobileNumber"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	NumberOfPeople  *int              `json:"numberOfPeople"`
	PickupTime      *string           `json:"pickupTime"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerAddress string            `json:"customerAddress"`
}

// OrderEvent is the body of an order event.
type OrderEvent struct {
	OrderID string             `json:"orderId"`
	UserID  string             `json:"userId"`
	Status  models.OrderStatus `json:"status"`
	Total   float64            `json:"total"`
}

// OrderService handles order placement, status changes and the customer-details projection.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	carts     *CartService
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which case no events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, carts *CartService, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		carts:     carts,
		publisher: publisher,
	}
}

// PlaceOrder stores a pending order built from in and then clears the user's cart.
// The two steps are not atomic: a failed clear is logged and the order stays placed.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	order := &models.Order{
		UserID:          in.UserID,
		Items:           nonNil(append([]models.CartLine(nil), in.Items...)),
		Total:           in.Total,
		Status:          models.OrderStatusPending,
		Type:            in.Type,
		PaymentMethod:   in.PaymentMethod,
		MobileNumber:    in.MobileNumber,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerAddress: in.CustomerAddress,
		CreatedAt:       time.Now(),
	}
	if in.DeliveryAddress != nil && *in.DeliveryAddress != "" {
		order.DeliveryAddress = in.DeliveryAddress
	}
	if in.NumberOfPeople != nil && *in.NumberOfPeople != 0 {
		order.NumberOfPeople = in.NumberOfPeople
	}
	if in.PickupTime != nil && *in.PickupTime != "" {
		order.PickupTime = in.PickupTime
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order for user %s: %w", in.UserID, err)
	}

	if err := s.carts.ClearCart(ctx, in.UserID); err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Str("user_id", in.UserID).Msg("order placed but cart was not cleared")
	}

	s.publish(EventOrderPlaced, order)
	return order, nil
}

// ListOrders returns every order.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return nonNil(orders), nil
}

// ListOrdersForUser returns the orders placed by userID.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return nonNil(orders), nil
}

// UpdateOrderStatus sets the status of an existing order to any non-empty value.
// Setting the current status again is a no-op.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	if status == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}
	next := models.OrderStatus(status)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", id, err)
	}
	if order.Status == next {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	order.Status = next
	s.publish(EventOrderStatusUpdated, order)
	return nil
}

// ListOrdersWithCustomerDetails returns every order whose userId matches a stored user, with the
// customer fields replaced by that user's name, email and address. Orders without a matching user
// are left out. Nothing is written back.
func (s *OrderService) ListOrdersWithCustomerDetails(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	ids := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.UserID]; ok || o.UserID == "" {
			continue
		}
		seen[o.UserID] = struct{}{}
		ids = append(ids, o.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	joined := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		u, ok := byID[o.UserID]
		if !ok {
			continue
		}
		o.CustomerName = u.Name
		o.CustomerEmail = u.Email
		o.CustomerAddress = u.Address
		joined = append(joined, o)
	}
	return joined, nil
}

func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Total,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to marshal order event")
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Str("event", routingKey).Msg("failed to publish order event")
		return
	}
	log.Debug().Str("order_id", order.ID).Str("event", routingKey).Msg("published order event")
}
