package services

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for the per-user cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first
// access. Idempotent, no error conditions beyond storage failures.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetOrCreateByUser(userID)
}

// AddItem puts quantity units of a product into the user's cart. If
// the product is already in the cart the quantities are merged into
// the one line. Stock is only checked on this initial path, not when a
// line grows.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.NotFound("product not found")
	}
	if product.StockQuantity <= 0 {
		return nil, apperrors.OutOfStock("product '%s' is out of stock", product.Name)
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.cartRepo.AddItem(cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(userID)
}

// UpdateItem sets the quantity of a line in the user's cart. Quantity
// zero removes the line. There is no upper bound or stock check.
func (s *CartService) UpdateItem(userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("quantity cannot be negative")
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		err = s.cartRepo.RemoveItem(item)
	} else {
		err = s.cartRepo.UpdateItemQuantity(item, quantity)
	}
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(userID)
}

// RemoveItem deletes a line from the user's cart.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.RemoveItem(item); err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(userID)
}

// ClearCart deletes every line from the user's cart. A no-op when the
// cart is already empty.
func (s *CartService) ClearCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Clear(cart.ID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(userID)
}
