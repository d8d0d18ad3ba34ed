package models

import (
	"gorm.io/gorm"
)

// Image metadata for a stored campaign image. Identifier is derived from
// the file bytes and the owning campaign, so re-uploading identical bytes
// for the same campaign updates the existing row instead of duplicating.
type Image struct {
	gorm.Model
	Identifier string `gorm:"uniqueIndex;not null" json:"identifier"`
	Bucket     string `gorm:"not null" json:"bucket"`
	ObjectKey  string `gorm:"not null" json:"objectKey"`
	CampaignID uint   `gorm:"index;not null" json:"campaignId"`
}
