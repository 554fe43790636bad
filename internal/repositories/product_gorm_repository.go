package repositories

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderings whitelists the sortable columns. Keys are the values
// accepted from clients, Django-style with a "-" prefix for descending.
var orderings = map[string]string{
	"price":       "products.price ASC",
	"-price":      "products.price DESC",
	"created_at":  "products.created_at ASC",
	"-created_at": "products.created_at DESC",
	"name":        "products.name ASC",
	"-name":       "products.name DESC",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves active products matching the filter.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).
		Select("products.*").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Where("products.is_active = ?", true)

	if filter.CategoryID != "" {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.CategoryName != "" {
		query = query.Where("categories.name = ?", filter.CategoryName)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.InStock {
		query = query.Where("products.stock_quantity > ?", 0)
	}
	if filter.Query != "" {
		needle := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
			needle, needle, needle,
		)
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = orderings["-created_at"]
	}

	var products []models.Product
	if err := query.Order(order).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Featured retrieves the newest active, in-stock products.
func (r *GORMProductRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("is_active = ? AND stock_quantity > ?", true, 0).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found for deletion", id)
	}
	return nil
}
