package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/urfave/cli/v3"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to a .env file",
		Value: ".env",
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "productapi",
		Usage:  "REST API for managing products",
		Flags:  []cli.Flag{envFlag()},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Flags:  []cli.Flag{envFlag()},
				Action: serveAction,
			},
			{
				Name:   "clear",
				Usage:  "remove every product by recreating the products table",
				Flags:  []cli.Flag{envFlag()},
				Action: clearAction,
			},
		},
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	// --- Configuration ---
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	log.SetLevel(cfg.FiberLogLevel())

	// --- Database ---
	// A server without its database cannot answer any product request, so
	// a failed connection stops the process.
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorf("Error closing database: %v", err)
		}
	}()
	log.Info("Database connection established")

	// --- Services ---
	opts := []services.ProductServiceOption{
		services.WithListAvailability(cfg.ListIncludeAvailability),
	}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		opts = append(opts, services.WithEventPublisher(mqClient))
	} else {
		log.Info("RABBITMQ_URL not set, product events are disabled")
	}
	productService := services.NewProductService(repositories.NewGORMProductRepository(db), opts...)

	// --- HTTP ---
	app, err := server.NewApp(cfg, productService)
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", cfg.AppPort)
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
	return nil
}

func clearAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorf("Error closing database: %v", err)
		}
	}()

	if err := database.Clear(db); err != nil {
		return err
	}
	log.Info("Products removed")
	return nil
}
