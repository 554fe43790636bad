package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access. Each user
// owns exactly one cart; GetOrCreateByUser is the only way a cart
// comes into existence.
type CartRepository interface {
	GetOrCreateByUser(userID string) (*models.Cart, error)
	// AddItem merges quantity into an existing (cart, product) line or
	// creates a new one, and returns the resulting line.
	AddItem(cartID, productID string, quantity int) (*models.CartItem, error)
	GetItem(cartID, itemID string) (*models.CartItem, error)
	UpdateItemQuantity(item *models.CartItem, quantity int) error
	RemoveItem(item *models.CartItem) error
	Clear(cartID string) error
}
