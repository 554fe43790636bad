package models

import "time"

// Review is a user's rating of a product. One review per
// (product, user) pair. No aggregate rating is maintained.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_user"`
	Rating    int       `json:"rating" gorm:"not null" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" gorm:"type:varchar(2000)" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}
