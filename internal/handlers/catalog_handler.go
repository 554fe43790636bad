package handlers

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles HTTP requests for categories and products.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. Reads are public,
// writes require a bearer token. The fixed /products subpaths are
// registered before the :id routes so they are matched first.
func (h *CatalogHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	public.Get("/categories", h.HandleListCategories)
	public.Get("/categories/:id", h.HandleGetCategory)
	public.Get("/products/featured", h.HandleFeaturedProducts)
	public.Get("/products/search", h.HandleSearchProducts)
	public.Get("/products", h.HandleListProducts)
	public.Get("/products/:id", h.HandleGetProduct)

	protected.Post("/categories", h.HandleCreateCategory)
	protected.Put("/categories/:id", h.HandleUpdateCategory)
	protected.Delete("/categories/:id", h.HandleDeleteCategory)
	protected.Post("/products", h.HandleCreateProduct)
	protected.Put("/products/:id", h.HandleUpdateProduct)
	protected.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleListCategories retrieves all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single category by ID.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve category", err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category.
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	existing, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve category", err)
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	category.ID = existing.ID
	category.CreatedAt = existing.CreatedAt
	if err := h.validate.Struct(category); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.UpdateCategory(&category); err != nil {
		return respondError(c, "Could not update category", err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category by ID.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return respondError(c, "Could not delete category", err)
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}

// parseProductFilter reads the catalog filter from query parameters.
func parseProductFilter(c *fiber.Ctx) (repositories.ProductFilter, error) {
	filter := repositories.ProductFilter{
		CategoryID:   c.Query("category"),
		CategoryName: c.Query("category_name"),
		Query:        c.Query("q"),
		Ordering:     c.Query("ordering"),
		InStock:      c.Query("in_stock") == "true",
	}
	if raw := c.Query("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &price
	}
	return filter, nil
}

// HandleListProducts retrieves active products matching the query
// parameters: category, category_name, min_price, max_price, in_stock,
// q, ordering.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid price filter",
			"error":   err.Error(),
		})
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleFeaturedProducts retrieves the newest active, in-stock products.
func (h *CatalogHandler) HandleFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.service.FeaturedProducts()
	if err != nil {
		return respondError(c, "Could not retrieve featured products", err)
	}
	return c.JSON(products)
}

// HandleSearchProducts performs a free-text catalog search. An empty
// query yields an empty list.
func (h *CatalogHandler) HandleSearchProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON([]models.Product{})
	}

	products, err := h.service.ListProducts(repositories.ProductFilter{Query: query})
	if err != nil {
		return respondError(c, "Could not search products", err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by ID.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	existing, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve product", err)
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := h.validate.Struct(product); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		return respondError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by ID.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
