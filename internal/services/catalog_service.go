package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// featuredLimit caps the featured-products listing.
const featuredLimit = 8

// CatalogService handles business logic for categories and products.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetAllCategories retrieves all categories ordered by name.
func (s *CatalogService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category.
func (s *CatalogService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a category. Names are unique.
func (s *CatalogService) CreateCategory(category *models.Category) error {
	if existing, err := s.categoryRepo.GetByName(category.Name); err == nil && existing != nil {
		return apperrors.Validation("category '%s' already exists", category.Name)
	}
	return s.categoryRepo.Create(category)
}

// UpdateCategory updates an existing category.
func (s *CatalogService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

// DeleteCategory deletes a category by its ID.
func (s *CatalogService) DeleteCategory(id string) error {
	return s.categoryRepo.Delete(id)
}

// ListProducts retrieves active products matching the filter.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// FeaturedProducts retrieves the newest active, in-stock products.
func (s *CatalogService) FeaturedProducts() ([]models.Product, error) {
	return s.productRepo.Featured(featuredLimit)
}

// GetProductByID retrieves a product. Inactive products are not
// exposed, matching the listing behavior.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.NotFound("product with ID %s not found", id)
	}
	return product, nil
}

// CreateProduct creates a new product after checking the price and
// category invariants.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if err := s.checkProduct(product); err != nil {
		return err
	}
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product under the same invariants.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if err := s.checkProduct(product); err != nil {
		return err
	}
	return s.productRepo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

func (s *CatalogService) checkProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return apperrors.Validation("price must not be negative")
	}
	if product.StockQuantity < 0 {
		return apperrors.Validation("stock quantity must not be negative")
	}
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return apperrors.Validation("category with ID %s does not exist", product.CategoryID)
	}
	return nil
}
