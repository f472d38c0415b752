package handlers

import (
	"log"

	"kasir/internal/models"
	"kasir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Post("/", h.HandleRecordPayment)
	paymentRoutes.Get("/:orderId", h.HandleGetPayment)
}

// RecordPaymentRequest is the body of POST /payments.
type RecordPaymentRequest struct {
	OrderID string               `json:"order_id" validate:"required"`
	Amount  float64              `json:"amount" validate:"required,gt=0"`
	Method  string               `json:"method" validate:"required"`
	Status  models.PaymentStatus `json:"status" validate:"omitempty"`
}

// HandleRecordPayment records a payment attempt against an order.
func (h *PaymentHandler) HandleRecordPayment(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	paymentID, err := h.service.Record(c.UserContext(), req.OrderID, req.Amount, req.Method, req.Status)
	if err != nil {
		log.Printf("Error recording payment for order %s: %v", req.OrderID, err)
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Payment recorded successfully.",
		"paymentId": paymentID,
	})
}

// HandleGetPayment returns the most recent payment for an order.
func (h *PaymentHandler) HandleGetPayment(c *fiber.Ctx) error {
	payment, err := h.service.GetByOrder(c.UserContext(), c.Params("orderId"))
	if err != nil {
		log.Printf("Error getting payment for order %s: %v", c.Params("orderId"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"payment": payment,
	})
}
