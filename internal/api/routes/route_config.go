package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	CatalogHandler      handlers.CatalogHandler
	RecipeHandler       handlers.RecipeHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Catalog()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Get("/subscriptions", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetSubscriptions)
		user.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUser)
		user.Post("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Subscribe)
		user.Delete("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Catalog() {
	ingredients := c.App.Group("/api/v1/ingredients")
	ingredients.Get("", c.CatalogHandler.GetIngredients)
	ingredients.Get("/:id", c.CatalogHandler.GetIngredientDetail)

	tags := c.App.Group("/api/v1/tags")
	tags.Get("", c.CatalogHandler.GetTags)
	tags.Get("/:id", c.CatalogHandler.GetTagDetail)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// read paths are public with an optional viewer
	recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
	recipes.Get("/download_shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DownloadShoppingCart)
	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)

	recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
	recipes.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.FavoriteRecipe)
	recipes.Delete("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UnfavoriteRecipe)
	recipes.Post("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.AddToCart)
	recipes.Delete("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.RemoveFromCart)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
