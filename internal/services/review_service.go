package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ReviewService handles business logic for product reviews.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// ListProductReviews retrieves the reviews of a product, newest first.
func (s *ReviewService) ListProductReviews(productID string) ([]models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProduct(productID)
}

// CreateReview records a user's rating of a product. A user reviews a
// product at most once.
func (s *ReviewService) CreateReview(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(review.ProductID); err != nil {
		return err
	}
	if existing, err := s.reviewRepo.GetByProductAndUser(review.ProductID, review.UserID); err == nil && existing != nil {
		return apperrors.Validation("you have already reviewed this product")
	}
	return s.reviewRepo.Create(review)
}

// GetOwnReview retrieves one of the caller's reviews. Reviews by other
// users look absent.
func (s *ReviewService) GetOwnReview(userID, reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.NotFound("review with ID %s not found", reviewID)
	}
	return review, nil
}

// UpdateReview replaces the rating and comment of one of the caller's
// reviews.
func (s *ReviewService) UpdateReview(userID, reviewID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}
	review, err := s.GetOwnReview(userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes one of the caller's reviews.
func (s *ReviewService) DeleteReview(userID, reviewID string) error {
	review, err := s.GetOwnReview(userID, reviewID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}
