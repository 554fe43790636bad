package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes. Listing a product's
// reviews is public; writing requires a bearer token.
func (h *ReviewHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	public.Get("/products/:id/reviews", h.HandleListProductReviews)

	protected.Post("/products/:id/reviews", h.HandleCreateReview)
	protected.Get("/reviews/:id", h.HandleGetReview)
	protected.Put("/reviews/:id", h.HandleUpdateReview)
	protected.Delete("/reviews/:id", h.HandleDeleteReview)
}

// HandleListProductReviews retrieves the reviews of one product.
func (h *ReviewHandler) HandleListProductReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListProductReviews(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

// ReviewRequest represents the request body for creating or updating a
// review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// HandleCreateReview records the caller's rating of a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review := models.Review{
		ProductID: c.Params("id"),
		UserID:    currentUserID(c),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.service.CreateReview(&review); err != nil {
		return respondError(c, "Could not create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleGetReview retrieves one of the caller's reviews.
func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.service.GetOwnReview(currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve review", err)
	}
	return c.JSON(review)
}

// HandleUpdateReview replaces the rating and comment of one of the
// caller's reviews.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.service.UpdateReview(currentUserID(c), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, "Could not update review", err)
	}
	return c.JSON(review)
}

// HandleDeleteReview removes one of the caller's reviews.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.service.DeleteReview(currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, "Could not delete review", err)
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
