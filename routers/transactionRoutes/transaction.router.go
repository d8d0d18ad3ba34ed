package transactionRoutes

import (
	transactionController "crowdfund/controllers/transaction"
	"crowdfund/middleware"
	transactionValidator "crowdfund/validators/transaction"

	"github.com/gofiber/fiber/v2"
)

func SetupTransactionRoutes(app *fiber.App, controller *transactionController.TransactionController) {
	transactionGroup := app.Group("/transaction")

	transactionGroup.Post("/", transactionValidator.Create(), middleware.JWTMiddleware, controller.CreateTransaction)
	transactionGroup.Get("/:publicId", controller.GetTransaction)

	// Provider payment notifications carry no user session; they are
	// authenticated by the shared webhook secret instead.
	transactionGroup.Post("/webhook", middleware.WebhookAuth, transactionValidator.Webhook(), controller.Webhook)
}
