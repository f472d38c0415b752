package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// EventPublisher publishes checkout events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// amountsEqual compares currency amounts at cent precision.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// OrderService handles the checkout workflow: it turns a cart into an
// order plus line items and clears the cart, all inside one storage
// transaction.
type OrderService struct {
	tx              repositories.TxManager
	orderRepo       repositories.OrderRepository
	publisher       EventPublisher
	checkoutTimeout time.Duration
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are emitted.
func NewOrderService(tx repositories.TxManager, orderRepo repositories.OrderRepository, publisher EventPublisher, checkoutTimeout time.Duration) *OrderService {
	return &OrderService{
		tx:              tx,
		orderRepo:       orderRepo,
		publisher:       publisher,
		checkoutTimeout: checkoutTimeout,
	}
}

// OrderItemInput is one requested line of a checkout. Price is what the
// client believes the unit price to be; the catalog price is
// authoritative and a mismatch rejects the whole order.
type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PlaceOrder creates an order with status pending, snapshots its line
// items at catalog prices, and clears the user's cart. The three writes
// are one atomic unit: a failure at any point rolls everything back and
// the cart survives untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, totalAmount float64, items []OrderItemInput) (string, error) {
	if userID == "" {
		return "", NewValidationError("user_id is required")
	}
	if totalAmount <= 0 {
		return "", NewValidationError("total_amount must be greater than zero")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return "", NewValidationError("every item needs a product_id")
		}
		if item.Quantity <= 0 {
			return "", NewValidationError("item quantity must be a positive integer")
		}
	}

	if s.checkoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.checkoutTimeout)
		defer cancel()
	}

	var order models.Order
	err := s.tx.WithinTx(ctx, func(r repositories.TxRepos) error {
		// Lock the cart rows first so concurrent checkouts for the same
		// user serialize against one cart snapshot.
		if _, err := r.Carts().ItemsForCheckout(ctx, userID); err != nil {
			return err
		}

		lineItems := make([]models.OrderItem, 0, len(items))
		var computed float64
		for _, item := range items {
			product, err := r.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return classify(err, "product not found")
			}
			// The catalog price is authoritative. A caller-supplied
			// price that disagrees means the client is working off a
			// stale or forged catalog.
			if item.Price != 0 && !amountsEqual(item.Price, product.Price) {
				return NewValidationError("item price does not match catalog price")
			}
			lineItems = append(lineItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
			computed += product.Price * float64(item.Quantity)
		}

		if len(items) > 0 && !amountsEqual(computed, totalAmount) {
			return NewValidationError("total_amount does not match item prices")
		}

		order = models.Order{
			UserID:      userID,
			TotalAmount: totalAmount,
			Status:      models.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return err
		}
		for i := range lineItems {
			lineItems[i].OrderID = order.ID
		}
		if err := r.Orders().CreateItems(ctx, lineItems); err != nil {
			return err
		}

		return r.Carts().ClearForUser(ctx, userID)
	})
	if err != nil {
		return "", classify(err, "product not found")
	}

	s.publishOrderPlaced(&order)
	return order.ID, nil
}

// publishOrderPlaced emits an order.placed event. Publishing is
// best-effort: the order is already committed, so failures are logged
// and swallowed.
func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("", "order.placed", body); err != nil {
		log.Printf("Warning: failed to publish order.placed for order %s: %v", order.ID, err)
	}
}

// ListUserOrders returns the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, NewValidationError("user id is required")
	}
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "orders not found")
	}
	return orders, nil
}

// GetOrderDetails returns an order header with its line items.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID string) (*models.Order, []models.OrderItem, error) {
	if orderID == "" {
		return nil, nil, NewValidationError("order id is required")
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, classify(err, "order not found")
	}
	items, err := s.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, classify(err, "order not found")
	}
	return order, items, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if orderID == "" {
		return NewValidationError("order id is required")
	}
	if !models.ValidOrderStatus(status) {
		return NewValidationError("unknown order status")
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return classify(err, "order not found")
	}
	return nil
}
