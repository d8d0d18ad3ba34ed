package transactionValidator

import (
	"crowdfund/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest is the validated create-transaction payload.
type CreateRequest struct {
	CampaignID      uint `json:"campaignId"`
	BuyerID         uint `json:"buyerId"`
	AddTransaction  bool `json:"addTransaction"`
	AddCheckoutLink bool `json:"addCheckoutLink"`
}

// Create validates a transaction-creation request. A checkout link can
// only be requested together with a provider transaction; that invariant
// is enforced here, before any orchestration runs.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CampaignID == 0 {
			errors["campaignId"] = "Campaign ID must be a positive number!"
		}
		if reqData.BuyerID == 0 {
			errors["buyerId"] = "Buyer ID must be a positive number!"
		}
		if reqData.AddCheckoutLink && !reqData.AddTransaction {
			errors["addCheckoutLink"] = "addCheckoutLink can only be true if addTransaction is also true."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTransaction", reqData)
		return c.Next()
	}
}

// WebhookRequest is the validated provider payment event.
type WebhookRequest struct {
	TransactionID string `json:"transactionId"`
	State         string `json:"state"`
	Amount        int64  `json:"amount"`
}

// Webhook validates a provider payment notification.
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebhookRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TransactionID == "" {
			errors["transactionId"] = "Transaction ID is required!"
		}
		if reqData.State == "" {
			errors["state"] = "State is required!"
		}
		if reqData.Amount < 0 {
			errors["amount"] = "Amount must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
