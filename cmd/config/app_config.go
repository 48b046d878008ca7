package config

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/api/routes"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/catalog"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/recipe"
	"foodgram-backend/pkg/subscription"
	"foodgram-backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, subscriptionRepository, jwtService, mailer)
	catalogService := catalog.NewCatalogService(catalogRepository)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository, userRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, catalogRepository, subscriptionRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		CatalogHandler:      catalogHandler,
		RecipeHandler:       recipeHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
