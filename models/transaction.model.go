package models

import (
	"gorm.io/gorm"
)

// Transaction states reported by payment events.
const (
	TransactionStateCreated   = "created"
	TransactionStatePaid      = "paid"
	TransactionStatePartial   = "partial"
	TransactionStateProcessed = "processed"
	TransactionStateAborted   = "aborted"
	TransactionStateProblem   = "problem"
)

// Transaction links a campaign purchase to a buyer. ProviderID is the
// escrow provider's transaction id when one was created. Balance starts
// at zero and is updated by payment events, stored in cents.
type Transaction struct {
	gorm.Model
	CampaignID   uint   `gorm:"index;not null" json:"campaignId"`
	BuyerID      uint   `gorm:"index;not null" json:"buyerId"`
	ProviderID   string `gorm:"index;default:''" json:"providerId"`
	PublicID     string `gorm:"uniqueIndex;not null" json:"publicId"`
	Balance      int64  `gorm:"default:0" json:"balance"`
	CheckoutLink string `gorm:"default:''" json:"checkoutLink"`
	State        string `gorm:"default:'created'" json:"state"`
}
