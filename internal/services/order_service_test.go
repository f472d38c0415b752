package services_test

import (
	"context"
	"testing"
	"time"

	"kasir/internal/models"
	"kasir/internal/repositories"
	"kasir/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutFixture() (*MockCartRepository, *MockOrderRepository, *MockProductRepository, *stubTxManager) {
	carts := new(MockCartRepository)
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	tx := &stubTxManager{repos: &stubTxRepos{carts: carts, orders: orders, products: products}}
	return carts, orders, products, tx
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	_, orders, _, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	cases := []struct {
		name   string
		userID string
		total  float64
		items  []services.OrderItemInput
	}{
		{"missing user", "", 100, nil},
		{"zero total", "user-1", 0, nil},
		{"negative total", "user-1", -5, nil},
		{"zero quantity item", "user-1", 100, []services.OrderItemInput{{ProductID: "p1", Quantity: 0, Price: 100}}},
		{"missing product id", "user-1", 100, []services.OrderItemInput{{Quantity: 1, Price: 100}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.PlaceOrder(ctx, tc.userID, tc.total, tc.items)
			assert.Error(t, err)
			assert.Equal(t, services.KindValidation, services.KindOf(err))
		})
	}

	// Bad input never reaches the store.
	assert.Equal(t, 0, tx.calls)
}

func TestOrderService_PlaceOrder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	carts, orders, products, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	carts.On("ItemsForCheckout", mock.Anything, "user-1").Return([]models.CartItem{}, nil).Once()
	products.On("GetByID", mock.Anything, "prod-missing").Return(nil, repositories.ErrNotFound).Once()

	_, err := service.PlaceOrder(ctx, "user-1", 100, []services.OrderItemInput{
		{ProductID: "prod-missing", Quantity: 1, Price: 100},
	})
	assert.Error(t, err)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "ClearForUser", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_PriceMismatch(t *testing.T) {
	ctx := context.Background()
	carts, orders, products, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	carts.On("ItemsForCheckout", mock.Anything, "user-1").Return([]models.CartItem{}, nil)
	products.On("GetByID", mock.Anything, "prod-1").
		Return(&models.Product{ID: "prod-1", Name: "Laptop", Price: 1200}, nil)

	// Caller claims a stale unit price.
	_, err := service.PlaceOrder(ctx, "user-1", 999, []services.OrderItemInput{
		{ProductID: "prod-1", Quantity: 1, Price: 999},
	})
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	// Caller's prices agree but the claimed total does not.
	_, err = service.PlaceOrder(ctx, "user-1", 1000, []services.OrderItemInput{
		{ProductID: "prod-1", Quantity: 1, Price: 1200},
	})
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "ClearForUser", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	carts, orders, products, tx := newCheckoutFixture()
	publisher := new(MockPublisher)
	service := services.NewOrderService(tx, orders, publisher, 0)

	carts.On("ItemsForCheckout", mock.Anything, "user-1").Return([]models.CartItem{
		{ID: "cart-1", UserID: "user-1", ProductID: "prod-5", Quantity: 2},
	}, nil).Once()
	products.On("GetByID", mock.Anything, "prod-5").
		Return(&models.Product{ID: "prod-5", Name: "Mouse", Price: 100}, nil).Once()
	orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*models.Order)
			order.ID = "order-1"
		}).Return(nil).Once()

	var createdItems []models.OrderItem
	orders.On("CreateItems", mock.Anything, mock.AnythingOfType("[]models.OrderItem")).
		Run(func(args mock.Arguments) {
			createdItems = args.Get(1).([]models.OrderItem)
		}).Return(nil).Once()
	carts.On("ClearForUser", mock.Anything, "user-1").Return(nil).Once()
	publisher.On("Publish", "", "order.placed", mock.Anything).Return(nil).Once()

	orderID, err := service.PlaceOrder(ctx, "user-1", 200, []services.OrderItemInput{
		{ProductID: "prod-5", Quantity: 2, Price: 100},
	})
	assert.NoError(t, err)
	assert.Equal(t, "order-1", orderID)

	// Line item is a snapshot of the catalog price, tied to the new order.
	assert.Len(t, createdItems, 1)
	assert.Equal(t, "order-1", createdItems[0].OrderID)
	assert.Equal(t, "prod-5", createdItems[0].ProductID)
	assert.Equal(t, 2, createdItems[0].Quantity)
	assert.Equal(t, 100.0, createdItems[0].Price)

	carts.AssertExpectations(t)
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_EmptyItems(t *testing.T) {
	ctx := context.Background()
	carts, orders, _, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	carts.On("ItemsForCheckout", mock.Anything, "user-1").Return([]models.CartItem{}, nil).Once()
	orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = "order-2"
		}).Return(nil).Once()
	orders.On("CreateItems", mock.Anything, mock.AnythingOfType("[]models.OrderItem")).Return(nil).Once()
	carts.On("ClearForUser", mock.Anything, "user-1").Return(nil).Once()

	orderID, err := service.PlaceOrder(ctx, "user-1", 50, nil)
	assert.NoError(t, err)
	assert.Equal(t, "order-2", orderID)
}

func TestOrderService_PlaceOrder_Timeout(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	tx := &stubTxManager{err: context.DeadlineExceeded}
	service := services.NewOrderService(tx, orders, nil, time.Second)

	_, err := service.PlaceOrder(ctx, "user-1", 50, nil)
	assert.Error(t, err)
	assert.Equal(t, services.KindTimeout, services.KindOf(err))
}

func TestOrderService_GetOrderDetails(t *testing.T) {
	ctx := context.Background()
	_, orders, _, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	t.Run("unknown order is not found", func(t *testing.T) {
		orders.On("GetByID", mock.Anything, "order-missing").Return(nil, repositories.ErrNotFound).Once()

		_, _, err := service.GetOrderDetails(ctx, "order-missing")
		assert.Equal(t, services.KindNotFound, services.KindOf(err))
	})

	t.Run("returns header and items", func(t *testing.T) {
		orders.On("GetByID", mock.Anything, "order-1").
			Return(&models.Order{ID: "order-1", UserID: "user-1", TotalAmount: 200}, nil).Once()
		orders.On("ListItems", mock.Anything, "order-1").
			Return([]models.OrderItem{{ID: "oi-1", OrderID: "order-1", ProductID: "prod-5", Quantity: 2, Price: 100}}, nil).Once()

		order, items, err := service.GetOrderDetails(ctx, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, "order-1", order.ID)
		assert.Len(t, items, 1)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	_, orders, _, tx := newCheckoutFixture()
	service := services.NewOrderService(tx, orders, nil, 0)

	t.Run("rejects unknown status", func(t *testing.T) {
		err := service.UpdateStatus(ctx, "order-1", "teleported")
		assert.Equal(t, services.KindValidation, services.KindOf(err))
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("updates to a known status", func(t *testing.T) {
		orders.On("UpdateStatus", mock.Anything, "order-1", models.OrderStatusShipped).Return(nil).Once()
		assert.NoError(t, service.UpdateStatus(ctx, "order-1", models.OrderStatusShipped))
		orders.AssertExpectations(t)
	})
}
