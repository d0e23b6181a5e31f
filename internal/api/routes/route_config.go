package routes

import (
	"Foodia-Shopping/internal/api/handlers"
	"Foodia-Shopping/internal/middleware"
	"Foodia-Shopping/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	ShoppingHandler handlers.ShoppingHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	// Idempotency absorbs client retries of the same write; nil disables it.
	Idempotency fiber.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.ShoppingList()
	c.AuthRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) AuthRoute() {
	c.App.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
}

func (c *Config) ShoppingList() {
	list := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	if c.Idempotency != nil {
		list.Use(c.Idempotency)
	}

	list.Get("", c.ShoppingHandler.GetShoppingList)
	list.Delete("/completed", c.ShoppingHandler.ClearCompleted)
	list.Post("/share", c.ShoppingHandler.ShareList)

	// Items
	list.Post("/items", c.ShoppingHandler.AddItem)
	list.Patch("/items/:id", c.ShoppingHandler.UpdateItem)
	list.Patch("/items/:id/toggle", c.ShoppingHandler.ToggleItem)
	list.Delete("/items/:id", c.ShoppingHandler.DeleteItem)

	// Bulk import
	list.Post("/import", c.ShoppingHandler.ImportIngredients)
	list.Post("/import/recipes/:id", c.ShoppingHandler.ImportRecipe)
}
