package handlers

import (
	"log"

	"kasir/internal/models"
	"kasir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/user/:userId", h.HandleListUserOrders)
	orderRoutes.Get("/:orderId", h.HandleGetOrderDetails)
	orderRoutes.Patch("/:orderId/status", h.HandleUpdateStatus)
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	UserID      string                    `json:"user_id" validate:"required"`
	TotalAmount float64                   `json:"total_amount" validate:"required,gt=0"`
	Items       []services.OrderItemInput `json:"items" validate:"dive"`
}

// HandlePlaceOrder runs the checkout workflow.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	orderID, err := h.service.PlaceOrder(c.UserContext(), req.UserID, req.TotalAmount, req.Items)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", req.UserID, err)
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed successfully.",
		"orderId": orderID,
	})
}

// HandleListUserOrders returns a user's orders, newest first.
func (h *OrderHandler) HandleListUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListUserOrders(c.UserContext(), c.Params("userId"))
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", c.Params("userId"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// HandleGetOrderDetails returns an order with its line items.
func (h *OrderHandler) HandleGetOrderDetails(c *fiber.Ctx) error {
	order, items, err := h.service.GetOrderDetails(c.UserContext(), c.Params("orderId"))
	if err != nil {
		log.Printf("Error getting order %s: %v", c.Params("orderId"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
		"items":   items,
	})
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:orderId/status.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.UpdateStatus(c.UserContext(), c.Params("orderId"), req.Status); err != nil {
		log.Printf("Error updating status for order %s: %v", c.Params("orderId"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully.",
	})
}
