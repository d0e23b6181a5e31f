package config

import (
	"Foodia-Shopping/internal/api/handlers"
	"Foodia-Shopping/internal/api/routes"
	"Foodia-Shopping/internal/middleware"
	"Foodia-Shopping/internal/utils"
	"Foodia-Shopping/internal/utils/cache"
	"Foodia-Shopping/internal/utils/mailing"
	"Foodia-Shopping/pkg/jwt"
	"Foodia-Shopping/pkg/recipe"
	"Foodia-Shopping/pkg/shopping"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())
	app.Use(requestid.New())

	// setting up access log and limiter
	logDir := utils.GetConfig("LOG_DIR")
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(logDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	limiterConfig := limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 10),
		Expiration: 1 * time.Second,
	}
	idempotencyConfig := idempotency.Config{
		KeyHeader: "X-Idempotency-Key",
		Lifetime:  30 * time.Minute,
	}

	// shared state when redis is configured, in-memory otherwise
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		storage, err := cache.NewRedisStorage(cache.RedisConfig{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
			DB:       utils.GetConfigInt("REDIS_DB", 0),
			Prefix:   "foodia-shopping:",
		})
		if err != nil {
			return nil, err
		}
		limiterConfig.Storage = storage
		idempotencyConfig.Storage = storage
		log.Info("using redis for rate limit and idempotency storage", zap.String("addr", addr))
	}
	app.Use(limiter.New(limiterConfig))

	// Repository
	shoppingRepository := shopping.NewShoppingRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	shoppingService := shopping.NewShoppingService(shoppingRepository, recipeRepository, mailer, log)

	// Handler
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator, log)

	// routes
	routesConfig := routes.Config{
		App:             app,
		ShoppingHandler: shoppingHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		Idempotency:     idempotency.New(idempotencyConfig),
	}
	routesConfig.Setup()
	return app, nil
}
