package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateFromCart converts the user's cart into an order inside a
	// single transaction: read lines, snapshot prices, insert order and
	// order items, clear the cart. Either everything commits or nothing
	// does.
	CreateFromCart(userID, shippingAddress, phone string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserAndID(userID, id string) (*models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
}
