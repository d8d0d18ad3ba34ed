package services

import (
	"context"
	"crowdfund/errs"
	"crowdfund/escrow"
	"crowdfund/models"
	"crowdfund/utils"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TransactionService composes buyer lookup, campaign lookup, escrow
// transaction creation, checkout-link creation and local persistence into
// the purchase operation.
type TransactionService struct {
	DB     *gorm.DB
	Escrow EscrowProvider
}

func NewTransactionService(db *gorm.DB, escrowClient EscrowProvider) *TransactionService {
	return &TransactionService{DB: db, Escrow: escrowClient}
}

// CreateTransactionInput carries a validated purchase request.
// AddCheckoutLink is only meaningful when AddTransaction is set; the
// request validator rejects the other combination before this runs.
type CreateTransactionInput struct {
	CampaignID      uint
	BuyerID         uint
	AddTransaction  bool
	AddCheckoutLink bool
}

// TransactionReceipt identifies the persisted transaction.
type TransactionReceipt struct {
	ID       uint   `json:"id"`
	PublicID string `json:"publicId"`
}

// Title of the single allocation line on provider transactions.
// TODO: derive from the campaign item once campaigns carry variants.
const allocationTitle = "Purchase"

// Fixed delivery/inspection windows, placeholder values.
const (
	daysToDeliver = 7
	daysToInspect = 7
)

// Create runs the purchase orchestration. At most one provider-side
// transaction is created per invocation; if the local write fails after
// the provider call succeeded the provider transaction is orphaned (no
// compensating action, matching the provider's manual-resolution flow).
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*TransactionReceipt, error) {
	if in.AddCheckoutLink && !in.AddTransaction {
		return nil, errs.New(errs.KindValidation, "addCheckoutLink can only be true if addTransaction is also true.")
	}

	if err := s.Escrow.Authenticate(ctx); err != nil {
		return nil, err
	}

	// Buyer and campaign lookups are independent; fetch them concurrently.
	var buyer models.Buyer
	var campaign models.Campaign

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.DB.WithContext(gctx).First(&buyer, in.BuyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New(errs.KindNotFound, "Buyer not found.")
			}
			return errs.Wrap(errs.KindInternal, "failed to fetch buyer", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.DB.WithContext(gctx).Preload("Seller").First(&campaign, in.CampaignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New(errs.KindNotFound, "Campaign not found.")
			}
			return errs.Wrap(errs.KindInternal, "failed to fetch campaign", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if buyer.TokenID == "" {
		return nil, errs.New(errs.KindValidation, "Buyer has no payment token.")
	}
	if campaign.Seller == nil || campaign.Seller.TokenID == "" {
		return nil, errs.New(errs.KindValidation, "Seller has no payment token.")
	}

	var providerID string
	var checkoutLink string

	if in.AddTransaction {
		providerTxn, err := s.Escrow.CreateTransaction(ctx, escrow.CreateTransactionInput{
			Title:         campaign.Title,
			Description:   campaign.Description,
			Industry:      escrow.IndustryGeneralGoods,
			Currency:      escrow.CurrencyZAR,
			FeeAllocation: escrow.FeeAllocationSeller,
			Allocations: []escrow.Allocation{
				{
					Title:         allocationTitle,
					Description:   "General allocation.",
					Value:         utils.UnscaleCost(campaign.CostBase),
					DaysToDeliver: daysToDeliver,
					DaysToInspect: daysToInspect,
				},
			},
			Parties: []escrow.Party{
				{Token: buyer.TokenID, Role: escrow.RoleBuyer},
				{Token: campaign.Seller.TokenID, Role: escrow.RoleSeller},
			},
		})
		if err != nil {
			return nil, err
		}
		if providerTxn == nil || providerTxn.ID == "" {
			return nil, errs.New(errs.KindUpstream, "Nothing received from the escrow provider when creating a transaction.")
		}
		providerID = providerTxn.ID

		if in.AddCheckoutLink {
			link, err := s.Escrow.CreateCheckoutLink(ctx, providerID)
			if err != nil {
				return nil, err
			}
			checkoutLink = link
		}
	}

	record := models.Transaction{
		CampaignID:   campaign.ID,
		BuyerID:      buyer.ID,
		ProviderID:   providerID,
		Balance:      0, // updated by payment events
		PublicID:     utils.GeneratePublicID(),
		CheckoutLink: checkoutLink,
		State:        models.TransactionStateCreated,
	}
	if err := s.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, errs.Wrap(errs.KindPersistence, "Failed to create transaction.", err)
	}

	return &TransactionReceipt{ID: record.ID, PublicID: record.PublicID}, nil
}

// GetByPublicID fetches a transaction by its public identifier.
func (s *TransactionService) GetByPublicID(ctx context.Context, publicID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.DB.WithContext(ctx).Where("public_id = ?", publicID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Transaction not found.")
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch transaction", err)
	}
	return &txn, nil
}

var validStates = map[string]bool{
	models.TransactionStatePaid:      true,
	models.TransactionStatePartial:   true,
	models.TransactionStateProcessed: true,
	models.TransactionStateAborted:   true,
	models.TransactionStateProblem:   true,
}

// ApplyPaymentEvent applies a provider payment notification to the local
// record: the amount (cents) is added to the running balance and the
// state is replaced.
func (s *TransactionService) ApplyPaymentEvent(ctx context.Context, providerID, state string, amount int64) (*models.Transaction, error) {
	if !validStates[state] {
		return nil, errs.New(errs.KindValidation, "Unknown transaction state.")
	}

	var txn models.Transaction
	if err := s.DB.WithContext(ctx).Where("provider_id = ?", providerID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Transaction not found.")
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to fetch transaction", err)
	}

	txn.Balance += amount
	txn.State = state
	if err := s.DB.WithContext(ctx).Save(&txn).Error; err != nil {
		return nil, errs.Wrap(errs.KindPersistence, "Failed to update transaction.", err)
	}
	return &txn, nil
}
