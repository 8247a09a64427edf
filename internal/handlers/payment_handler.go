package handlers

import (
	"errors"

	"ivr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler exposes payment intent creation.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/create-payment-intent", h.HandleCreatePaymentIntent)
}

// HandleCreatePaymentIntent creates a card payment intent for the order total and returns its client secret.
func (h *PaymentHandler) HandleCreatePaymentIntent(c *fiber.Ctx) error {
	var req struct {
		Total float64 `json:"total"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	secret, err := h.service.CreatePaymentIntent(c.UserContext(), req.Total)
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Total must be greater than zero"})
	case errors.Is(err, services.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Payments are not configured"})
	case err != nil:
		return internalError(c, err, "Failed to create payment intent")
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}
