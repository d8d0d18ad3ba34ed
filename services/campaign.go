package services

import (
	"context"
	"crowdfund/errs"
	"crowdfund/models"
	"crowdfund/storage"
	"crowdfund/utils"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignService handles campaign CRUD and image attachment.
type CampaignService struct {
	DB    *gorm.DB
	Store ObjectStore
}

func NewCampaignService(db *gorm.DB, store ObjectStore) *CampaignService {
	return &CampaignService{DB: db, Store: store}
}

// CreateCampaignInput carries a validated campaign-creation request.
// CostBase is the unscaled API value.
type CreateCampaignInput struct {
	Title        string
	Description  string
	CostBase     int64
	CheckoutLink string
	SellerID     uint
}

// CampaignReceipt identifies the persisted campaign.
type CampaignReceipt struct {
	ID       uint   `json:"id"`
	PublicID string `json:"publicId"`
}

// Create stores a new campaign. The cost is scaled x100 before persisting.
func (s *CampaignService) Create(ctx context.Context, in CreateCampaignInput) (*CampaignReceipt, error) {
	var seller models.Seller
	if err := s.DB.WithContext(ctx).First(&seller, in.SellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Seller not found.")
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch seller", err)
	}

	campaign := models.Campaign{
		Title:        in.Title,
		Description:  in.Description,
		CostBase:     utils.ScaleCost(in.CostBase),
		SellerID:     seller.ID,
		CheckoutLink: in.CheckoutLink,
		PublicID:     utils.GeneratePublicID(),
	}
	if err := s.DB.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, errs.Wrap(errs.KindPersistence, "Failed to create campaign.", err)
	}

	return &CampaignReceipt{ID: campaign.ID, PublicID: campaign.PublicID}, nil
}

// ImageView is an externally consumable image reference.
type ImageView struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}

// CampaignView is the external representation of a campaign: the cost is
// unscaled and images carry presigned URLs.
type CampaignView struct {
	PublicID     string      `json:"publicId"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CostBase     int64       `json:"costBase"`
	CheckoutLink string      `json:"checkoutLink"`
	Images       []ImageView `json:"images"`
}

const presignExpiry = 15 * time.Minute

// GetByPublicID fetches a campaign with presigned image URLs.
func (s *CampaignService) GetByPublicID(ctx context.Context, publicID string) (*CampaignView, error) {
	var campaign models.Campaign
	if err := s.DB.WithContext(ctx).Preload("Images").Where("public_id = ?", publicID).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Campaign not found.")
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch campaign", err)
	}

	view := &CampaignView{
		PublicID:     campaign.PublicID,
		Title:        campaign.Title,
		Description:  campaign.Description,
		CostBase:     utils.UnscaleCost(campaign.CostBase),
		CheckoutLink: campaign.CheckoutLink,
		Images:       make([]ImageView, 0, len(campaign.Images)),
	}

	for _, img := range campaign.Images {
		url, err := s.Store.PresignedGetURL(ctx, img.ObjectKey, presignExpiry)
		if err != nil {
			return nil, errs.Wrap(errs.KindUpstream, "Failed to sign image URL.", err)
		}
		view.Images = append(view.Images, ImageView{Identifier: img.Identifier, URL: url})
	}

	return view, nil
}

// UpdateCampaignInput carries a partial update; nil fields are untouched.
type UpdateCampaignInput struct {
	Title        *string
	Description  *string
	CostBase     *int64
	CheckoutLink *string
}

// Update applies a partial update to a campaign by its internal id.
func (s *CampaignService) Update(ctx context.Context, id uint, in UpdateCampaignInput) error {
	var campaign models.Campaign
	if err := s.DB.WithContext(ctx).First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.KindNotFound, "Campaign not found.")
		}
		return errs.Wrap(errs.KindInternal, "failed to fetch campaign", err)
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CostBase != nil {
		updates["cost_base"] = utils.ScaleCost(*in.CostBase)
	}
	if in.CheckoutLink != nil {
		updates["checkout_link"] = *in.CheckoutLink
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.DB.WithContext(ctx).Model(&campaign).Updates(updates).Error; err != nil {
		return errs.Wrap(errs.KindPersistence, "Failed to update campaign.", err)
	}
	return nil
}

// UploadFile is one uploaded image payload.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// AttachImages stores the uploaded files under deterministic keys and
// upserts their metadata rows. Identical bytes for the same campaign map
// to the same identifier, so repeats update instead of duplicating. A
// missing bucket is created and reported as a retryable condition.
func (s *CampaignService) AttachImages(ctx context.Context, campaignID uint, files []UploadFile) ([]ImageView, error) {
	var campaign models.Campaign
	if err := s.DB.WithContext(ctx).First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Campaign not found.")
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch campaign", err)
	}

	results := make([]ImageView, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Name))
		if !allowedImageExtensions[ext] {
			return nil, errs.New(errs.KindValidation, fmt.Sprintf("File %q has an unsupported extension.", file.Name))
		}
		if !allowedImageMIMETypes[file.ContentType] {
			return nil, errs.New(errs.KindValidation, fmt.Sprintf("File %q has an unsupported content type.", file.Name))
		}

		identifier := utils.ImageIdentifier(file.Data, campaign.ID)
		key := fmt.Sprintf("campaigns/%d/%s%s", campaign.ID, identifier[:16], ext)

		err := s.Store.Upload(ctx, key, file.Data, file.ContentType)
		if errors.Is(err, storage.ErrBucketNotFound) {
			if berr := s.Store.EnsureBucket(ctx); berr != nil {
				return nil, errs.Wrap(errs.KindUpstream, "Failed to create storage bucket.", berr)
			}
			return nil, errs.New(errs.KindRetryable, "Storage bucket was created, retry the upload.")
		}
		if err != nil {
			return nil, errs.Wrap(errs.KindUpstream, "Failed to upload image.", err)
		}

		image := models.Image{
			Identifier: identifier,
			Bucket:     s.Store.Bucket(),
			ObjectKey:  key,
			CampaignID: campaign.ID,
		}
		err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identifier"}},
			DoUpdates: clause.AssignmentColumns([]string{"bucket", "object_key", "updated_at"}),
		}).Create(&image).Error
		if err != nil {
			return nil, errs.Wrap(errs.KindPersistence, "Failed to record image.", err)
		}

		url, err := s.Store.PresignedGetURL(ctx, key, presignExpiry)
		if err != nil {
			return nil, errs.Wrap(errs.KindUpstream, "Failed to sign image URL.", err)
		}
		results = append(results, ImageView{Identifier: identifier, URL: url})
	}

	return results, nil
}
