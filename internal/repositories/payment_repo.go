package repositories

import (
	"context"

	"kasir/internal/models"
)

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	// GetLatestByOrder returns the most recent payment recorded against
	// the order, or ErrNotFound if none exists.
	GetLatestByOrder(ctx context.Context, orderID string) (*models.Payment, error)
}
