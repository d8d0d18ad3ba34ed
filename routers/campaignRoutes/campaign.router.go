package campaignRoutes

import (
	campaignController "crowdfund/controllers/campaign"
	"crowdfund/middleware"
	campaignValidator "crowdfund/validators/campaign"

	"github.com/gofiber/fiber/v2"
)

func SetupCampaignRoutes(app *fiber.App, controller *campaignController.CampaignController) {
	campaignGroup := app.Group("/campaign")

	campaignGroup.Get("/:publicId", controller.GetCampaign)
	campaignGroup.Post("/", campaignValidator.Create(), middleware.JWTMiddleware, controller.CreateCampaign)
	campaignGroup.Patch("/:id", campaignValidator.Update(), middleware.JWTMiddleware, controller.PatchCampaign)
	campaignGroup.Post("/:id/images", middleware.JWTMiddleware, controller.PostCampaignImages)
}
