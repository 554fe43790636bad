package repositories

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows and orders a catalog listing. Zero values mean
// "no constraint".
type ProductFilter struct {
	CategoryID   string
	CategoryName string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStock      bool
	// Query is matched case-insensitively as a substring of the product
	// name, description and category name.
	Query string
	// Ordering is one of price, created_at, name, optionally prefixed
	// with "-" for descending. Defaults to -created_at.
	Ordering string
}

// ProductRepository defines the interface for product data access.
// Listing operations only surface active products.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	Featured(limit int) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	ListByProduct(productID string) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	GetByProductAndUser(productID, userID string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
}
