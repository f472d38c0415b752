package repositories

import (
	"context"

	"kasir/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}
