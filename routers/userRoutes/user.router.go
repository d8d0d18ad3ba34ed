package userRoutes

import (
	userController "crowdfund/controllers/user"
	userValidator "crowdfund/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, controller *userController.UserController) {
	userGroup := app.Group("/user")

	userGroup.Post("/", userValidator.Create(), controller.CreateUser)
}
