package routes

import (
	"github.com/gofiber/fiber/v2"

	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PantryHandler handlers.PantryHandler
	PlanHandler   handlers.PlanHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Pantry()
	c.Plans()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Put("/preferences", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdatePreferences)
	}
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	pantry.Post("", c.PantryHandler.AddItem)
	pantry.Get("", c.PantryHandler.GetItems)
	pantry.Put("/:id", c.PantryHandler.UpdateItem)
	pantry.Delete("/:id", c.PantryHandler.DeleteItem)
}

func (c *Config) Plans() {
	plans := c.App.Group("/api/v1/plans", c.Middleware.AuthMiddleware(c.JWTService))

	plans.Post("/:user_id/generate", c.PlanHandler.GeneratePlan)
	plans.Get("/:plan_id", c.PlanHandler.GetPlan)
	plans.Get("/:plan_id/lista-compras", c.PlanHandler.GetShoppingList)
	plans.Patch("/:plan_id/lista-compras", c.PlanHandler.UpdateShoppingList)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/by-ingredients", c.RecipeHandler.SearchByIngredients)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) GuestRoute() {
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
