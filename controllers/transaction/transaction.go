package transactionController

import (
	"crowdfund/errs"
	"crowdfund/middleware"
	"crowdfund/services"
	transactionValidator "crowdfund/validators/transaction"
	"log"

	"github.com/gofiber/fiber/v2"
)

// TransactionController exposes the purchase flow.
type TransactionController struct {
	Service *services.TransactionService
}

func NewTransactionController(service *services.TransactionService) *TransactionController {
	return &TransactionController{Service: service}
}

// CreateTransaction runs the escrow purchase orchestration
func (ct *TransactionController) CreateTransaction(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTransaction").(*transactionValidator.CreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	log.Printf("Creating new transaction from buyer %d for campaign %d", reqData.BuyerID, reqData.CampaignID)

	receipt, err := ct.Service.Create(c.Context(), services.CreateTransactionInput{
		CampaignID:      reqData.CampaignID,
		BuyerID:         reqData.BuyerID,
		AddTransaction:  reqData.AddTransaction,
		AddCheckoutLink: reqData.AddCheckoutLink,
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction created!", receipt)
}

// GetTransaction returns a transaction by its public identifier
func (ct *TransactionController) GetTransaction(c *fiber.Ctx) error {
	publicID := c.Params("publicId")
	if publicID == "" {
		return errs.New(errs.KindValidation, "Public ID is required.")
	}

	txn, err := ct.Service.GetByPublicID(c.Context(), publicID)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched!", txn)
}

// Webhook applies a provider payment event to the local record
func (ct *TransactionController) Webhook(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWebhook").(*transactionValidator.WebhookRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	txn, err := ct.Service.ApplyPaymentEvent(c.Context(), reqData.TransactionID, reqData.State, reqData.Amount)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment event applied!", fiber.Map{
		"publicId": txn.PublicID,
		"balance":  txn.Balance,
		"state":    txn.State,
	})
}
