package config

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/api/routes"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/pkg/catalog"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/pantry"
	"Meal-Planner-Backend/pkg/plan"
	"Meal-Planner-Backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, *plan.Worker, error) {
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
		TimeZone:   "America/Mexico_City",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// catalog infrastructure
	budget := catalog.NewBudgetTracker(catalog.DefaultDailyPointLimit)
	searchCache, detailCache := newCaches()
	apiKeys := strings.Split(utils.GetConfig("SPOONACULAR_API_KEYS"), ",")
	catalogService := catalog.NewCatalogService(
		utils.GetConfig("SPOONACULAR_BASE_URL"),
		apiKeys,
		budget,
		searchCache,
		detailCache,
	)

	// Repository
	userRepository := user.NewUserRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	planRepository := plan.NewPlanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	pantryService := pantry.NewPantryService(pantryRepository)
	assembler := plan.NewAssembler(catalogService)
	planService := plan.NewPlanService(
		planRepository,
		userRepository,
		pantryService,
		assembler,
		budget,
		catalog.DefaultPerPlanCap,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	planHandler := handlers.NewPlanHandler(planService, validator)
	recipeHandler := handlers.NewRecipeHandler(catalogService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PantryHandler: pantryHandler,
		PlanHandler:   planHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()

	worker := plan.NewWorker(planService, planRepository)
	return app, worker, nil
}

// newCaches picks Redis when configured, otherwise the in-process cache.
func newCaches() (catalog.Cache, catalog.Cache) {
	redisAddr := utils.GetConfig("REDIS_ADDR")
	if redisAddr != "" {
		return catalog.NewRedisCache(redisAddr, utils.GetConfig("REDIS_PASSWORD"), catalog.DefaultCacheTTL),
			catalog.NewRedisCache(redisAddr, utils.GetConfig("REDIS_PASSWORD"), catalog.DefaultCacheTTL)
	}
	return catalog.NewMemoryCache(catalog.DefaultCacheTTL, catalog.DefaultCacheCheckPeriod),
		catalog.NewMemoryCache(catalog.DefaultCacheTTL, catalog.DefaultCacheCheckPeriod)
}
