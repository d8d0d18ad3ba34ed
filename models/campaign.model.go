package models

import (
	"gorm.io/gorm"
)

// Campaign model. CostBase is stored scaled x100 as integer cents; the
// API accepts and returns the unscaled value.
type Campaign struct {
	gorm.Model
	Title        string  `gorm:"not null" json:"title"`
	Description  string  `gorm:"not null" json:"description"`
	CostBase     int64   `gorm:"default:0" json:"costBase"`
	SellerID     uint    `gorm:"index;not null" json:"sellerId"`
	Seller       *Seller `json:"-"`
	CheckoutLink string  `gorm:"default:''" json:"checkoutLink"`
	PublicID     string  `gorm:"uniqueIndex;not null" json:"publicId"`
	Images       []Image `json:"images,omitempty"`
}
