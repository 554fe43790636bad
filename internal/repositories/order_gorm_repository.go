package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// newOrderNumber generates a unique human-readable order number.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// CreateFromCart runs the whole checkout sequence in one transaction.
// A failure at any step rolls back the order, its items and the cart
// clearing together, so no intermediate state is ever observable.
func (r *GORMOrderRepository) CreateFromCart(userID, shippingAddress, phone string) (*models.Order, error) {
	var order *models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("cart not found")
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}

		var items []models.CartItem
		err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("created_at ASC").
			Find(&items).Error
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return apperrors.Validation("cart is empty")
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.TotalPrice())
		}

		order = &models.Order{
			ID:              uuid.New().String(),
			OrderNumber:     newOrderNumber(),
			UserID:          userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			ShippingAddress: shippingAddress,
			Phone:           phone,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			orderItem := models.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				// Unit price frozen at checkout time.
				Price: item.Product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, orderItem)
		}

		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser retrieves all of a user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves an order regardless of owner (admin path).
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUserAndID retrieves an order scoped to its owner. Orders of
// other users look absent.
func (r *GORMOrderRepository) GetByUserAndID(userID, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order %s for user %s: %w", id, userID, err)
	}
	return &order, nil
}

// UpdateStatus sets the order status. Status validity is checked by
// the service before this is called.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order with ID %s not found for status update", id)
	}
	return nil
}
