package services

import (
	"context"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// PaymentService records payment attempts against orders.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// Record validates and stores a payment attempt. An empty status
// defaults to completed; unknown statuses are rejected. Returns the
// payment id.
func (s *PaymentService) Record(ctx context.Context, orderID string, amount float64, method string, status models.PaymentStatus) (string, error) {
	if orderID == "" || method == "" {
		return "", NewValidationError("order_id and method are required")
	}
	if amount <= 0 {
		return "", NewValidationError("amount must be greater than zero")
	}
	if status == "" {
		status = models.PaymentStatusCompleted
	}
	if !models.ValidPaymentStatus(status) {
		return "", NewValidationError("unknown payment status")
	}

	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return "", classify(err, "order not found")
	}

	payment := &models.Payment{
		OrderID: orderID,
		Amount:  amount,
		Method:  method,
		Status:  status,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return "", classify(err, "order not found")
	}
	return payment.ID, nil
}

// GetByOrder returns the most recent payment for an order.
func (s *PaymentService) GetByOrder(ctx context.Context, orderID string) (*models.Payment, error) {
	if orderID == "" {
		return nil, NewValidationError("order id is required")
	}
	payment, err := s.paymentRepo.GetLatestByOrder(ctx, orderID)
	if err != nil {
		return nil, classify(err, "payment not found")
	}
	return payment, nil
}
