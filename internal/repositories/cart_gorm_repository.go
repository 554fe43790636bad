package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetOrCreateByUser returns the user's cart, creating an empty one on
// first access. The unique index on user_id makes concurrent first
// accesses converge on a single cart: if the insert loses the race the
// existing row is fetched instead.
func (r *GORMCartRepository) GetOrCreateByUser(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where(models.Cart{UserID: userID}).
		Attrs(models.Cart{ID: uuid.New().String()}).
		FirstOrCreate(&cart).Error
	if err != nil {
		// Lost the insert race against the unique index; the row exists now.
		if retryErr := r.db.First(&cart, "user_id = ?", userID).Error; retryErr != nil {
			return nil, fmt.Errorf("failed to get or create cart for user %s: %w", userID, err)
		}
	}
	if err := r.loadItems(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// loadItems populates cart lines in insertion order with their products.
func (r *GORMCartRepository) loadItems(cart *models.Cart) error {
	err := r.db.Preload("Product").Preload("Product.Category").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC").
		Find(&cart.Items).Error
	if err != nil {
		return fmt.Errorf("failed to load cart items: %w", err)
	}
	return nil
}

// AddItem merges quantity into the existing (cart, product) line, or
// creates the line when the product is not yet in the cart. The merge
// path does not re-check stock.
func (r *GORMCartRepository) AddItem(cartID, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := r.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			ID:        uuid.New().String(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := r.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if err := r.db.Preload("Product").Preload("Product.Category").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}
	return &item, nil
}

// GetItem retrieves a cart line scoped to the given cart. Lines from
// other carts are indistinguishable from absent ones.
func (r *GORMCartRepository) GetItem(cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item with ID %s not found", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}

// UpdateItemQuantity replaces the line quantity. Quantity zero is
// handled by the caller as a removal.
func (r *GORMCartRepository) UpdateItemQuantity(item *models.CartItem, quantity int) error {
	res := r.db.Model(item).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item with ID %s not found for update", item.ID)
	}
	item.Quantity = quantity
	return nil
}

// RemoveItem deletes a line from the cart.
func (r *GORMCartRepository) RemoveItem(item *models.CartItem) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", item.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item with ID %s not found for removal", item.ID)
	}
	return nil
}

// Clear deletes all lines unconditionally. A no-op on an empty cart.
func (r *GORMCartRepository) Clear(cartID string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
