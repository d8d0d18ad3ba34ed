// Package services holds the application flows between the HTTP handlers
// and the database/provider clients. Provider clients are injected as
// interfaces so the flows can be exercised without network access.
package services

import (
	"context"
	"crowdfund/escrow"
	"crowdfund/identity"
	"time"
)

// EscrowProvider is the narrow contract this application needs from the
// escrow/payment SaaS.
type EscrowProvider interface {
	Authenticate(ctx context.Context) error
	CreateTransaction(ctx context.Context, input escrow.CreateTransactionInput) (*escrow.Transaction, error)
	CreateCheckoutLink(ctx context.Context, transactionID string) (string, error)
	CreatePaymentToken(ctx context.Context, input escrow.TokenInput) (*escrow.Token, error)
}

// ObjectStore is the contract for the image object storage.
type ObjectStore interface {
	Bucket() string
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// IdentityProvider is the contract for the authentication SaaS.
type IdentityProvider interface {
	RegisterUser(ctx context.Context, user identity.NewUser) (*identity.User, error)
}
