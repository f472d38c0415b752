package repositories_test

import (
	"context"
	"sync"
	"testing"

	"kasir/internal/models"
	"kasir/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openCartTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// SQLite allows one writer at a time; a single pooled connection
	// keeps concurrent writes from tripping over table locks.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestAddItem_InsertThenIncrement(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_upsert")
	repo := repositories.NewGORMCartRepository(db)

	first := &models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 1}
	assert.NoError(t, repo.AddItem(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.Quantity)

	second := &models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 3}
	assert.NoError(t, repo.AddItem(ctx, second))

	// Both calls land on the same row and the quantity accumulates.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddItem_ConcurrentAddsConverge(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_concurrent")
	repo := repositories.NewGORMCartRepository(db)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := &models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 1}
			errs <- repo.AddItem(ctx, item)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var rows []models.CartItem
	assert.NoError(t, db.Where("user_id = ?", "user-1").Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestAddItem_SeparateProductsSeparateRows(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_separate")
	repo := repositories.NewGORMCartRepository(db)

	assert.NoError(t, repo.AddItem(ctx, &models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 1}))
	assert.NoError(t, repo.AddItem(ctx, &models.CartItem{UserID: "user-1", ProductID: "prod-2", Quantity: 1}))
	assert.NoError(t, repo.AddItem(ctx, &models.CartItem{UserID: "user-2", ProductID: "prod-1", Quantity: 1}))

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_update")
	repo := repositories.NewGORMCartRepository(db)

	err := repo.UpdateQuantity(ctx, "no-such-item", 5)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRemove_NotFound(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_remove")
	repo := repositories.NewGORMCartRepository(db)

	err := repo.Remove(ctx, "no-such-item")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListByUser_JoinsCatalog(t *testing.T) {
	ctx := context.Background()
	db := openCartTestDB(t, "cart_list")
	cartRepo := repositories.NewGORMCartRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	assert.NoError(t, productRepo.Create(ctx, &models.Product{ID: "prod-1", Name: "Keyboard", Price: 150}))
	assert.NoError(t, cartRepo.AddItem(ctx, &models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 2}))

	lines, err := cartRepo.ListByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "Keyboard", lines[0].Name)
	assert.Equal(t, 150.0, lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
}
