package models

import "time"

// User represents a registered customer of the store.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	FirstName string    `json:"first_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Address   string    `json:"address" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"date_joined" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// FullName joins the user's first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// RevokedToken is a denylisted bearer token. Logout inserts the raw
// token here and the auth middleware rejects anything still present
// and unexpired.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Token     string    `gorm:"uniqueIndex;type:varchar(512)"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
