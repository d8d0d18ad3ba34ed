package userController

import (
	"crowdfund/errs"
	"crowdfund/middleware"
	"crowdfund/services"
	userValidator "crowdfund/validators/user"

	"github.com/gofiber/fiber/v2"
)

// UserController exposes specialized user creation.
type UserController struct {
	Service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

// CreateUser creates a base identity with its specialization row
func (ct *UserController) CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.CreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := ct.Service.Create(c.Context(), services.CreateUserInput{
		EmailAddress: reqData.EmailAddress,
		PhoneNumber:  reqData.PhoneNumber,
		FirstName:    reqData.FirstName,
		LastName:     reqData.LastName,
		Profile:      reqData.Profile,
		Role:         reqData.Role,
	})
	if err != nil {
		return err
	}

	// Fresh accounts get a session token right away so the client can
	// call the guarded routes without a separate login round trip.
	token, err := middleware.GenerateJWT(created.UserID, string(created.Role), reqData.EmailAddress)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "failed to sign session token", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User created!", fiber.Map{
		"user":  created,
		"token": token,
	})
}
