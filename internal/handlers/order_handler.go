package handlers

import (
	"errors"
	"fmt"

	"ivr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:userId", h.HandleGetOrdersForUser)
	orderRoutes.Patch("/:id", h.HandleUpdateOrderStatus)

	router.Get("/orders-with-users", h.HandleGetOrdersWithUsers)
}

// HandlePlaceOrder stores a pending order and clears the user's cart.
// Missing fields are stored as their zero values.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req services.PlaceOrderInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	order, err := h.service.PlaceOrder(c.UserContext(), req)
	if err != nil {
		return internalError(c, err, "Failed to place order")
	}
	return c.JSON(fiber.Map{
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch orders")
	}
	return c.JSON(orders)
}

// HandleGetOrdersForUser retrieves the orders of one user.
func (h *OrderHandler) HandleGetOrdersForUser(c *fiber.Ctx) error {
	orders, err := h.service.ListOrdersForUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return internalError(c, err, "Failed to fetch orders")
	}
	return c.JSON(orders)
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return invalidBody(c, err)
	}

	err := h.service.UpdateOrderStatus(c.UserContext(), orderID, updateData.Status)
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, fmt.Sprintf("Order with ID %s not found", orderID))
	case err != nil:
		return internalError(c, err, "Failed to update order status")
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

// HandleGetOrdersWithUsers returns the orders that belong to a known user, with customer fields
// taken from the user record.
func (h *OrderHandler) HandleGetOrdersWithUsers(c *fiber.Ctx) error {
	orders, err := h.service.ListOrdersWithCustomerDetails(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch orders")
	}
	return c.JSON(orders)
}
