package userValidator

import (
	"crowdfund/middleware"
	"crowdfund/services"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateRequest is the validated user-creation payload. UserType is the
// resolved role tag, parsed once here.
type CreateRequest struct {
	EmailAddress string          `json:"emailAddress"`
	PhoneNumber  string          `json:"phoneNumber"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Profile      json.RawMessage `json:"profile"`
	UserType     string          `json:"userType"`
	Role         services.Role   `json:"-"`
}

// Create validates a user-creation request
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.EmailAddress, "required,email,max=256"); err != nil {
			errors["emailAddress"] = "A valid email address is required!"
		}
		if len(reqData.FirstName) == 0 || len(reqData.FirstName) > 256 {
			errors["firstName"] = "First name must be between 1 and 256 characters!"
		}
		if len(reqData.LastName) == 0 || len(reqData.LastName) > 256 {
			errors["lastName"] = "Last name must be between 1 and 256 characters!"
		}
		if len(reqData.PhoneNumber) > 10 {
			errors["phoneNumber"] = "Phone number must be at most 10 characters!"
		}

		role, err := services.ParseRole(reqData.UserType)
		if err != nil {
			errors["userType"] = "User type must be one of admin, seller, buyer!"
		}
		reqData.Role = role

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}
