package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the base identity row. Role-specific fields live on the
// specialization rows below, linked one-to-one by UserID.
type User struct {
	gorm.Model
	EmailAddress string `gorm:"uniqueIndex;not null" json:"emailAddress"`
	PhoneNumber  string `gorm:"default:''" json:"phoneNumber"`
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	// Free-form profile blob supplied by the client.
	Profile datatypes.JSON `json:"profile,omitempty"`
	// Identifier assigned by the external identity provider.
	IdentityID string `gorm:"default:''" json:"-"`
}

// Seller holds the seller specialization. TokenID is the escrow
// provider's payment token for the seller party.
type Seller struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex;not null" json:"userId"`
	TokenID string `gorm:"default:''" json:"tokenId"`
}

// Buyer holds the buyer specialization. TokenID is the escrow
// provider's payment token for the buyer party.
type Buyer struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex;not null" json:"userId"`
	TokenID string `gorm:"default:''" json:"tokenId"`
}

// Admin holds the admin specialization. Admins carry no payment token.
type Admin struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
}
