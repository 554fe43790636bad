package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog. Prices are stored
// as fixed-point decimals, never floats.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string          `json:"name" gorm:"type:varchar(200);index" validate:"required,min=2,max=200"`
	Description   string          `json:"description" gorm:"type:varchar(2000)" validate:"omitempty,max=2000"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID    string          `json:"category_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Category      Category        `json:"category" gorm:"foreignKey:CategoryID"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time       `json:"-" gorm:"autoUpdateTime"`
}

// IsInStock reports whether the product can currently be purchased:
// positive stock and an active listing.
func (p Product) IsInStock() bool {
	return p.StockQuantity > 0 && p.IsActive
}
