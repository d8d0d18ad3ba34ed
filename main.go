package main

import (
	"context"
	"crowdfund/config"
	campaignController "crowdfund/controllers/campaign"
	transactionController "crowdfund/controllers/transaction"
	userController "crowdfund/controllers/user"
	"crowdfund/database"
	"crowdfund/escrow"
	"crowdfund/identity"
	"crowdfund/middleware"
	campaignRoutes "crowdfund/routers/campaignRoutes"
	transactionRoutes "crowdfund/routers/transactionRoutes"
	userRoutes "crowdfund/routers/userRoutes"
	"crowdfund/services"
	"crowdfund/storage"
	"crowdfund/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	cfg := config.AppConfig
	db := database.Database.Db

	// Provider clients are built once here and handed to the services.
	escrowClient := escrow.NewClient(cfg.EscrowAPIURL, cfg.EscrowAuthURL, cfg.EscrowClientID, cfg.EscrowSecret)
	identityClient := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)

	store, err := storage.New(context.Background(), cfg.StorageEndpoint, cfg.StorageRegion,
		cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket, cfg.StorageUseSSL)
	if err != nil {
		log.Fatalf("Failed to set up object storage: %v", err)
	}

	campaignService := services.NewCampaignService(db, store)
	transactionService := services.NewTransactionService(db, escrowClient)
	userService := services.NewUserService(db, escrowClient, identityClient)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    (config.AppConfig.MaxImageSizeMB + 1) << 20,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	campaignRoutes.SetupCampaignRoutes(app, campaignController.NewCampaignController(campaignService))
	transactionRoutes.SetupTransactionRoutes(app, transactionController.NewTransactionController(transactionService))
	userRoutes.SetupUserRoutes(app, userController.NewUserController(userService))

	utils.InitializeTransactionReconciler(db)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
