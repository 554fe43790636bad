package models_test

import (
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleCart() models.Cart {
	productA := models.Product{ID: "prod-a", Name: "Product A", Price: decimal.NewFromFloat(19.99), StockQuantity: 5, IsActive: true}
	productB := models.Product{ID: "prod-b", Name: "Product B", Price: decimal.NewFromFloat(49.99), StockQuantity: 3, IsActive: true}
	return models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{ID: "item-1", ProductID: productA.ID, Product: productA, Quantity: 2},
			{ID: "item-2", ProductID: productB.ID, Product: productB, Quantity: 1},
		},
	}
}

func TestCart_Totals(t *testing.T) {
	cart := sampleCart()

	assert.Equal(t, 3, cart.TotalItems())
	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromFloat(89.97)),
		"expected 89.97, got %s", cart.TotalPrice())
}

func TestCart_TotalPriceReflectsLivePriceChange(t *testing.T) {
	cart := sampleCart()

	// A catalog price edit changes the cart total on the next read
	// without any CartItem being mutated.
	cart.Items[0].Product.Price = decimal.NewFromFloat(10.00)

	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromFloat(69.99)),
		"expected 69.99, got %s", cart.TotalPrice())
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_TotalsEmpty(t *testing.T) {
	cart := models.Cart{ID: "cart-1", UserID: "user-1"}

	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartItem_TotalPrice(t *testing.T) {
	item := models.CartItem{
		Product:  models.Product{Price: decimal.NewFromFloat(19.99)},
		Quantity: 2,
	}
	assert.True(t, item.TotalPrice().Equal(decimal.NewFromFloat(39.98)))
}

func TestOrderItem_TotalPriceUsesFrozenPrice(t *testing.T) {
	item := models.OrderItem{
		Product:  models.Product{Price: decimal.NewFromFloat(99.99)}, // current catalog price
		Quantity: 3,
		Price:    decimal.NewFromFloat(49.99), // price at checkout
	}
	assert.True(t, item.TotalPrice().Equal(decimal.NewFromFloat(149.97)))
}

func TestNewCartView(t *testing.T) {
	cart := sampleCart()
	view := models.NewCartView(&cart)

	assert.Equal(t, cart.ID, view.ID)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.TotalItems)
	assert.True(t, view.TotalPrice.Equal(decimal.NewFromFloat(89.97)))
	assert.True(t, view.Items[0].TotalPrice.Equal(decimal.NewFromFloat(39.98)))
}
