package repositories_test

import (
	"fmt"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a uniquely named in-memory sqlite database with the
// full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RevokedToken{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return db
}

// seedProduct inserts a category and an active product at the given price.
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	category := models.Category{ID: uuid.New().String(), Name: "Category for " + name}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		CategoryID:    category.ID,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestGORMCartRepository_GetOrCreateByUser(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)

	cart, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)

	// A second call returns the same cart, not a duplicate.
	again, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", "user-1").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGORMCartRepository_AddItemMergesLines(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Widget", 19.99, 5)

	cart, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)

	first, err := repo.AddItem(cart.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	// Adding the same product again merges into the existing line.
	second, err := repo.AddItem(cart.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	reloaded, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
	assert.Equal(t, 5, reloaded.TotalItems())
}

func TestGORMCartRepository_TotalsFollowLivePrices(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	productA := seedProduct(t, db, "Product A", 19.99, 5)
	productB := seedProduct(t, db, "Product B", 49.99, 3)

	cart, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	_, err = repo.AddItem(cart.ID, productA.ID, 2)
	require.NoError(t, err)
	_, err = repo.AddItem(cart.ID, productB.ID, 1)
	require.NoError(t, err)

	loaded, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.TotalItems())
	assert.True(t, loaded.TotalPrice().Equal(decimal.NewFromFloat(89.97)),
		"expected 89.97, got %s", loaded.TotalPrice())

	// A price edit changes the total on the next read; no cart line is touched.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", productA.ID).
		Update("price", decimal.NewFromFloat(10.00)).Error)

	reloaded, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice().Equal(decimal.NewFromFloat(69.99)),
		"expected 69.99, got %s", reloaded.TotalPrice())
	for _, item := range reloaded.Items {
		if item.ProductID == productA.ID {
			assert.Equal(t, 2, item.Quantity)
		}
	}
}

func TestGORMCartRepository_UpdateAndRemoveItem(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Widget", 19.99, 5)

	cart, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	item, err := repo.AddItem(cart.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateItemQuantity(item, 7))
	reloaded, err := repo.GetItem(cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Quantity)

	require.NoError(t, repo.RemoveItem(item))
	_, err = repo.GetItem(cart.ID, item.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGORMCartRepository_GetItemScopedToCart(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Widget", 19.99, 5)

	cartA, err := repo.GetOrCreateByUser("user-a")
	require.NoError(t, err)
	cartB, err := repo.GetOrCreateByUser("user-b")
	require.NoError(t, err)

	item, err := repo.AddItem(cartA.ID, product.ID, 1)
	require.NoError(t, err)

	// Another user's cart cannot see the line.
	_, err = repo.GetItem(cartB.ID, item.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGORMCartRepository_Clear(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Widget", 19.99, 5)

	cart, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	_, err = repo.AddItem(cart.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Clear(cart.ID))
	reloaded, err := repo.GetOrCreateByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)

	// Clearing an already empty cart is a no-op, not an error.
	require.NoError(t, repo.Clear(cart.ID))
}
