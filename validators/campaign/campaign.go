package campaignValidator

import (
	"crowdfund/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest is the validated campaign-creation payload. CostBase is
// the unscaled cost; the service stores it x100.
type CreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CostBase     int64  `json:"costBase"`
	CheckoutLink string `json:"checkoutLink"`
	SellerID     uint   `json:"sellerId"`
}

// Create validates a campaign-creation request
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}
		if reqData.CostBase < 0 {
			errors["costBase"] = "Cost must not be negative!"
		}
		if reqData.SellerID == 0 {
			errors["sellerId"] = "Seller ID must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCampaign", reqData)
		return c.Next()
	}
}

// UpdateRequest is the validated partial-update payload; nil fields stay
// untouched.
type UpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CostBase     *int64  `json:"costBase"`
	CheckoutLink *string `json:"checkoutLink"`
}

// Update validates a campaign partial update
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && *reqData.Title == "" {
			errors["title"] = "Title must not be empty!"
		}
		if reqData.Description != nil && *reqData.Description == "" {
			errors["description"] = "Description must not be empty!"
		}
		if reqData.CostBase != nil && *reqData.CostBase < 0 {
			errors["costBase"] = "Cost must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCampaignUpdate", reqData)
		return c.Next()
	}
}
