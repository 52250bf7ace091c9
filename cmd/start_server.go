// Package server bootstraps the HTTP application: configuration,
// database and Redis connections, services, and the Fiber route table.
package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	accountshttp "github.com/dhruvil1809/ecommerce-backend/internal/accounts/handler/http"
	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/repository"
	accountsservice "github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
	carthttp "github.com/dhruvil1809/ecommerce-backend/internal/cart/handler/http"
	cartservice "github.com/dhruvil1809/ecommerce-backend/internal/cart/service"
	cataloghttp "github.com/dhruvil1809/ecommerce-backend/internal/catalog/handler/http"
	catalogrepository "github.com/dhruvil1809/ecommerce-backend/internal/catalog/repository"
	catalogservice "github.com/dhruvil1809/ecommerce-backend/internal/catalog/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/configs"
	"github.com/dhruvil1809/ecommerce-backend/internal/database"
	"github.com/dhruvil1809/ecommerce-backend/internal/middleware"
	ordershttp "github.com/dhruvil1809/ecommerce-backend/internal/orders/handler/http"
	ordersservice "github.com/dhruvil1809/ecommerce-backend/internal/orders/service"
	"github.com/dhruvil1809/ecommerce-backend/pkg/mail"
)

const defaultPort = "8080"

type AppConfig struct {
	HTTPPort string
	AppEnv   string
}

func InitConfig() (*configs.Config, *AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := configs.Load(os.Getenv("APP_ENV"))
	if err != nil {
		return nil, nil, err
	}

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = defaultPort
	}

	appConfig := &AppConfig{
		HTTPPort: httpPort,
		AppEnv:   os.Getenv("APP_ENV"),
	}
	return cfg, appConfig, nil
}

func SetupDatabase(cfg *configs.Config) (*database.Database, *database.RedisCache, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	redisCache, err := database.InitRedis(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, redisCache, nil
}

func SetupApp(db *database.Database, redisCache *database.RedisCache, cfg *configs.Config) *fiber.App {
	mailer := mail.NewMailerService(cfg)

	userRepo := repository.NewUserRepository(db.DB)
	authService := accountsservice.NewAuthService(userRepo, cfg, redisCache, mailer)

	catalogService := catalogservice.NewCatalogService(
		catalogrepository.NewCategoryRepository(db.DB),
		catalogrepository.NewSubCategoryRepository(db.DB),
		catalogrepository.NewProductRepository(db.DB),
		redisCache,
	)

	cartService := cartservice.NewCartService(db.DB)
	orderService := ordersservice.NewOrderService(db.DB, mailer)

	app := fiber.New(fiber.Config{
		AppName:       "Ecommerce Backend",
		CaseSensitive: true,
	})

	app.Use(func(c *fiber.Ctx) error {
		if c.UserContext() == nil {
			c.SetUserContext(context.Background())
		}
		return c.Next()
	})

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return db.HealthCheck(c.UserContext()) == nil
		},
		LivenessEndpoint: "/health",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:8080,http://localhost:3000",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authLimiter := middleware.RateLimit(redisCache.RawClient(), 10, time.Minute)
	for _, path := range []string{"/register", "/login", "/email-verify", "/code-verify", "/reset-forgot-password"} {
		app.Use(path, authLimiter)
	}

	protected := middleware.Protected(authService)

	accountshttp.NewAuthHandler(authService).RegisterRoutes(app, protected)
	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(app, protected)
	carthttp.NewCartHandler(cartService).RegisterRoutes(app, protected)
	ordershttp.NewOrderHandler(orderService).RegisterRoutes(app, protected)

	return app
}
