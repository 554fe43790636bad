package repositories

import "storefront/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
}

// TokenRepository tracks revoked bearer tokens for logout.
type TokenRepository interface {
	Revoke(token *models.RevokedToken) error
	IsRevoked(token string) (bool, error)
}
