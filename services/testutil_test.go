package services

import (
	"context"
	"crowdfund/config"
	"crowdfund/escrow"
	"crowdfund/identity"
	"crowdfund/models"
	"crowdfund/storage"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every statement on the same :memory: db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Buyer{},
		&models.Admin{},
		&models.Campaign{},
		&models.Image{},
		&models.Transaction{},
	))
	return db
}

// seedParties creates a tokenized seller and buyer with their base users.
func seedParties(t *testing.T, db *gorm.DB) (models.Seller, models.Buyer) {
	t.Helper()

	sellerUser := models.User{EmailAddress: "seller@example.com", FirstName: "Sue", LastName: "Seller"}
	require.NoError(t, db.Create(&sellerUser).Error)
	seller := models.Seller{UserID: sellerUser.ID, TokenID: "tok-seller"}
	require.NoError(t, db.Create(&seller).Error)

	buyerUser := models.User{EmailAddress: "buyer@example.com", FirstName: "Bob", LastName: "Buyer"}
	require.NoError(t, db.Create(&buyerUser).Error)
	buyer := models.Buyer{UserID: buyerUser.ID, TokenID: "tok-buyer"}
	require.NoError(t, db.Create(&buyer).Error)

	return seller, buyer
}

// seedCampaign stores a campaign with the given unscaled cost.
func seedCampaign(t *testing.T, db *gorm.DB, sellerID uint, cost int64) models.Campaign {
	t.Helper()

	campaign := models.Campaign{
		Title:       "Hand-thrown mugs",
		Description: "A batch of twelve mugs.",
		CostBase:    cost * 100,
		SellerID:    sellerID,
		PublicID:    fmt.Sprintf("campaign-%d", time.Now().UnixNano()),
	}
	require.NoError(t, db.Create(&campaign).Error)
	return campaign
}

// fakeEscrow implements EscrowProvider and records every call.
type fakeEscrow struct {
	authCalls  int
	txnCalls   int
	linkCalls  int
	tokenCalls int

	authErr  error
	txn      *escrow.Transaction
	txnErr   error
	link     string
	linkErr  error
	token    *escrow.Token
	tokenErr error

	lastTxnInput escrow.CreateTransactionInput
}

func (f *fakeEscrow) Authenticate(ctx context.Context) error {
	f.authCalls++
	return f.authErr
}

func (f *fakeEscrow) CreateTransaction(ctx context.Context, input escrow.CreateTransactionInput) (*escrow.Transaction, error) {
	f.txnCalls++
	f.lastTxnInput = input
	return f.txn, f.txnErr
}

func (f *fakeEscrow) CreateCheckoutLink(ctx context.Context, transactionID string) (string, error) {
	f.linkCalls++
	return f.link, f.linkErr
}

func (f *fakeEscrow) CreatePaymentToken(ctx context.Context, input escrow.TokenInput) (*escrow.Token, error) {
	f.tokenCalls++
	return f.token, f.tokenErr
}

// fakeStore implements ObjectStore in memory.
type fakeStore struct {
	objects       map[string][]byte
	missingBucket bool
	ensureCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Bucket() string { return "test-bucket" }

func (f *fakeStore) EnsureBucket(ctx context.Context) error {
	f.ensureCalls++
	f.missingBucket = false
	return nil
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if f.missingBucket {
		return storage.ErrBucketNotFound
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

// fakeIdentity implements IdentityProvider.
type fakeIdentity struct {
	calls int
	user  *identity.User
	err   error
}

func (f *fakeIdentity) RegisterUser(ctx context.Context, user identity.NewUser) (*identity.User, error) {
	f.calls++
	return f.user, f.err
}
