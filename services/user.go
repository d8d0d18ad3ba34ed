package services

import (
	"context"
	"crowdfund/errs"
	"crowdfund/escrow"
	"crowdfund/identity"
	"crowdfund/models"
	"crowdfund/utils"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the user specialization tag, resolved once at the API boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole resolves the request role tag.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(value), nil
	default:
		return "", errs.New(errs.KindValidation, fmt.Sprintf("Unknown userType %q.", value))
	}
}

// PaymentCapable reports whether the role takes part in escrow
// transactions and therefore needs a provider payment token.
func (r Role) PaymentCapable() bool {
	return r == RoleSeller || r == RoleBuyer
}

// UserService creates base identities with their specialization rows and
// attaches escrow payment tokens where the role requires one.
type UserService struct {
	DB       *gorm.DB
	Escrow   EscrowProvider
	Identity IdentityProvider
}

func NewUserService(db *gorm.DB, escrowClient EscrowProvider, identityClient IdentityProvider) *UserService {
	return &UserService{DB: db, Escrow: escrowClient, Identity: identityClient}
}

// CreateUserInput carries a validated user-creation request.
type CreateUserInput struct {
	EmailAddress string
	PhoneNumber  string
	FirstName    string
	LastName     string
	Profile      json.RawMessage
	Role         Role
}

// CreatedUser reports the persisted identity.
type CreatedUser struct {
	UserID           uint   `json:"userId"`
	Role             Role   `json:"userType"`
	SpecializationID uint   `json:"specializationId,omitempty"`
	TokenID          string `json:"tokenId,omitempty"`
}

// Create registers the user with the identity provider, writes the base
// row and the specialization row in one database transaction, then
// attaches a payment token for payment-capable roles. Token failure after
// the rows exist triggers a compensating delete so no user is left
// half-created.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*CreatedUser, error) {
	registered, err := s.Identity.RegisterUser(ctx, identity.NewUser{
		EmailAddress: in.EmailAddress,
		PhoneNumber:  in.PhoneNumber,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	})
	if err != nil {
		return nil, err
	}

	user := models.User{
		EmailAddress: in.EmailAddress,
		PhoneNumber:  in.PhoneNumber,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IdentityID:   registered.ID,
	}
	if len(in.Profile) > 0 {
		user.Profile = datatypes.JSON(in.Profile)
	}

	var specializationID uint
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.New(errs.KindDuplicate, "Email address already registered.")
			}
			return errs.Wrap(errs.KindPersistence, "Failed to create user.", err)
		}

		switch in.Role {
		case RoleSeller:
			seller := models.Seller{UserID: user.ID}
			if err := tx.Create(&seller).Error; err != nil {
				return errs.Wrap(errs.KindPersistence, "Failed to create seller.", err)
			}
			specializationID = seller.ID
		case RoleBuyer:
			buyer := models.Buyer{UserID: user.ID}
			if err := tx.Create(&buyer).Error; err != nil {
				return errs.Wrap(errs.KindPersistence, "Failed to create buyer.", err)
			}
			specializationID = buyer.ID
		case RoleAdmin:
			admin := models.Admin{UserID: user.ID}
			if err := tx.Create(&admin).Error; err != nil {
				return errs.Wrap(errs.KindPersistence, "Failed to create admin.", err)
			}
			specializationID = admin.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedUser{UserID: user.ID, Role: in.Role, SpecializationID: specializationID}

	if in.Role.PaymentCapable() {
		tokenID, err := s.attachPaymentToken(ctx, in, specializationID)
		if err != nil {
			s.rollbackUser(ctx, user.ID, in.Role)
			return nil, err
		}
		created.TokenID = tokenID
	}

	if err := utils.SendWelcomeEmail(in.EmailAddress, in.FirstName); err != nil {
		// best effort, the account is already usable
		log.Printf("Failed to send welcome email to %s: %v", in.EmailAddress, err)
	}

	return created, nil
}

// attachPaymentToken requests a payment token from the escrow provider
// and stores it on the specialization row.
func (s *UserService) attachPaymentToken(ctx context.Context, in CreateUserInput, specializationID uint) (string, error) {
	if err := s.Escrow.Authenticate(ctx); err != nil {
		return "", err
	}

	token, err := s.Escrow.CreatePaymentToken(ctx, escrow.TokenInput{
		GivenName:  in.FirstName,
		FamilyName: in.LastName,
		Email:      in.EmailAddress,
		Mobile:     in.PhoneNumber,
	})
	if err != nil {
		return "", err
	}
	if token == nil || token.ID == "" {
		return "", errs.New(errs.KindUpstream, "Nothing received from the escrow provider when creating a payment token.")
	}

	var model interface{}
	switch in.Role {
	case RoleSeller:
		model = &models.Seller{}
	case RoleBuyer:
		model = &models.Buyer{}
	}
	if err := s.DB.WithContext(ctx).Model(model).Where("id = ?", specializationID).Update("token_id", token.ID).Error; err != nil {
		return "", errs.Wrap(errs.KindPersistence, "Failed to attach payment token.", err)
	}
	return token.ID, nil
}

// rollbackUser removes the freshly created rows after a token failure.
// Hard delete so a duplicate retry of the same email succeeds.
func (s *UserService) rollbackUser(ctx context.Context, userID uint, role Role) {
	db := s.DB.WithContext(ctx)
	switch role {
	case RoleSeller:
		db.Unscoped().Where("user_id = ?", userID).Delete(&models.Seller{})
	case RoleBuyer:
		db.Unscoped().Where("user_id = ?", userID).Delete(&models.Buyer{})
	case RoleAdmin:
		db.Unscoped().Where("user_id = ?", userID).Delete(&models.Admin{})
	}
	if err := db.Unscoped().Delete(&models.User{}, userID).Error; err != nil {
		log.Printf("Failed to roll back user %d after token failure: %v", userID, err)
	}
}
