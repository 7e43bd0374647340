// Package server assembles the Fiber application.
package server

import (
	"productapi/internal/config"
	"productapi/internal/docs"
	"productapi/internal/handlers"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp builds the HTTP application: middleware, the /api ping route, the
// products router under /api/products and the documentation under /docs.
func NewApp(cfg *config.Config, productService *services.ProductService) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "productapi",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "from API"})
	})

	productHandler := handlers.NewProductHandler(productService)
	productHandler.RegisterRoutes(api)

	// --- Documentation ---
	if err := docs.RegisterRoutes(app); err != nil {
		return nil, err
	}

	return app, nil
}
