package services

import (
	"context"
	"crowdfund/errs"
	"crowdfund/escrow"
	"crowdfund/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionFullFlow(t *testing.T) {
	db := newTestDB(t)
	seller, buyer := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 100)

	provider := &fakeEscrow{
		txn:  &escrow.Transaction{ID: "provider-txn-1"},
		link: "https://checkout.test/provider-txn-1",
	}
	svc := NewTransactionService(db, provider)

	receipt, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID:      campaign.ID,
		BuyerID:         buyer.ID,
		AddTransaction:  true,
		AddCheckoutLink: true,
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Len(t, receipt.PublicID, 22)

	assert.Equal(t, 1, provider.authCalls)
	assert.Equal(t, 1, provider.txnCalls)
	assert.Equal(t, 1, provider.linkCalls)

	// the allocation carries the unscaled cost and fixed policy values
	require.Len(t, provider.lastTxnInput.Allocations, 1)
	assert.Equal(t, int64(100), provider.lastTxnInput.Allocations[0].Value)
	assert.Equal(t, 7, provider.lastTxnInput.Allocations[0].DaysToDeliver)
	assert.Equal(t, escrow.CurrencyZAR, provider.lastTxnInput.Currency)
	assert.Equal(t, escrow.FeeAllocationSeller, provider.lastTxnInput.FeeAllocation)
	require.Len(t, provider.lastTxnInput.Parties, 2)
	assert.Equal(t, "tok-buyer", provider.lastTxnInput.Parties[0].Token)
	assert.Equal(t, "tok-seller", provider.lastTxnInput.Parties[1].Token)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, receipt.ID).Error)
	assert.Equal(t, "provider-txn-1", stored.ProviderID)
	assert.Equal(t, "https://checkout.test/provider-txn-1", stored.CheckoutLink)
	assert.Equal(t, int64(0), stored.Balance)
	assert.Equal(t, buyer.ID, stored.BuyerID)
	assert.Equal(t, campaign.ID, stored.CampaignID)
	assert.Equal(t, models.TransactionStateCreated, stored.State)
}

func TestCreateTransactionWithoutProviderSteps(t *testing.T) {
	db := newTestDB(t)
	seller, buyer := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 50)

	provider := &fakeEscrow{}
	svc := NewTransactionService(db, provider)

	receipt, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID: campaign.ID,
		BuyerID:    buyer.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, provider.txnCalls)
	assert.Equal(t, 0, provider.linkCalls)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, receipt.ID).Error)
	assert.Empty(t, stored.ProviderID)
	assert.Empty(t, stored.CheckoutLink)
}

func TestCreateTransactionCheckoutLinkRequiresTransaction(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeEscrow{}
	svc := NewTransactionService(db, provider)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID:      1,
		BuyerID:         1,
		AddCheckoutLink: true,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	// rejected before any provider interaction
	assert.Equal(t, 0, provider.authCalls)
	assert.Equal(t, 0, provider.txnCalls)
}

func TestCreateTransactionUnknownCampaign(t *testing.T) {
	db := newTestDB(t)
	_, buyer := seedParties(t, db)

	provider := &fakeEscrow{txn: &escrow.Transaction{ID: "never-used"}}
	svc := NewTransactionService(db, provider)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID:     9999,
		BuyerID:        buyer.ID,
		AddTransaction: true,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// no escrow transaction may be created for a missing campaign
	assert.Equal(t, 0, provider.txnCalls)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTransactionEmptyProviderResponse(t *testing.T) {
	db := newTestDB(t)
	seller, buyer := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 10)

	provider := &fakeEscrow{} // CreateTransaction returns nil payload
	svc := NewTransactionService(db, provider)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID:     campaign.ID,
		BuyerID:        buyer.ID,
		AddTransaction: true,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindUpstream, errs.KindOf(err))

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTransactionBuyerWithoutToken(t *testing.T) {
	db := newTestDB(t)
	seller, _ := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 10)

	buyerUser := models.User{EmailAddress: "plain@example.com", FirstName: "P", LastName: "B"}
	require.NoError(t, db.Create(&buyerUser).Error)
	buyer := models.Buyer{UserID: buyerUser.ID}
	require.NoError(t, db.Create(&buyer).Error)

	provider := &fakeEscrow{txn: &escrow.Transaction{ID: "never-used"}}
	svc := NewTransactionService(db, provider)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		CampaignID:     campaign.ID,
		BuyerID:        buyer.ID,
		AddTransaction: true,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, 0, provider.txnCalls)
}

func TestApplyPaymentEvent(t *testing.T) {
	db := newTestDB(t)
	seller, buyer := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 100)

	txn := models.Transaction{
		CampaignID: campaign.ID,
		BuyerID:    buyer.ID,
		ProviderID: "provider-txn-9",
		PublicID:   "txn-public-9",
		State:      models.TransactionStateCreated,
	}
	require.NoError(t, db.Create(&txn).Error)

	svc := NewTransactionService(db, &fakeEscrow{})

	updated, err := svc.ApplyPaymentEvent(context.Background(), "provider-txn-9", models.TransactionStatePartial, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), updated.Balance)
	assert.Equal(t, models.TransactionStatePartial, updated.State)

	updated, err = svc.ApplyPaymentEvent(context.Background(), "provider-txn-9", models.TransactionStatePaid, 6000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), updated.Balance)
	assert.Equal(t, models.TransactionStatePaid, updated.State)

	_, err = svc.ApplyPaymentEvent(context.Background(), "unknown", models.TransactionStatePaid, 100)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = svc.ApplyPaymentEvent(context.Background(), "provider-txn-9", "shipped", 100)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestGetTransactionByPublicID(t *testing.T) {
	db := newTestDB(t)
	seller, buyer := seedParties(t, db)
	campaign := seedCampaign(t, db, seller.ID, 100)

	txn := models.Transaction{
		CampaignID: campaign.ID,
		BuyerID:    buyer.ID,
		PublicID:   "txn-public-1",
		State:      models.TransactionStateCreated,
	}
	require.NoError(t, db.Create(&txn).Error)

	svc := NewTransactionService(db, &fakeEscrow{})

	found, err := svc.GetByPublicID(context.Background(), "txn-public-1")
	require.NoError(t, err)
	assert.Equal(t, txn.ID, found.ID)

	_, err = svc.GetByPublicID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
