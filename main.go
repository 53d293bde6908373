package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/dto"
	"catalog/internal/files"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// driverMemory runs the service without a database, for demos.
const driverMemory = "memory"

func main() {
	// --- Configuration ---
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Initialize Repository ---
	var (
		productRepo repositories.ProductRepository
		db          *gorm.DB
		ping        func() error
	)
	if cfg.DBDriver == driverMemory {
		productRepo = repositories.NewInMemoryProductRepository()
	} else {
		var err error
		db, err = database.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := database.Migrate(db); err != nil {
			logger.Error("failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("failed to access connection pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		ping = sqlDB.Ping
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Initialize RabbitMQ Publisher (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn("product events disabled", slog.String("error", err.Error()))
		} else {
			mqClient = client
			publisher = client
		}
	}

	// --- Initialize Service ---
	productService := services.NewProductService(productRepo, publisher, logger)
	if cfg.SeedProducts {
		seedProducts(productService, logger)
	}

	// --- Initialize Fiber App ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := server.New(server.Options{
		ProductService: productService,
		UploadFilter:   files.NewFilter(cfg.UploadAllowedExtensions),
		Logger:         logger,
		BodyLimit:      cfg.UploadMaxBytes,
		Registry:       registry,
		RequestLog:     os.Stdout,
		Ping:           ping,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", slog.String("addr", cfg.AppPort), slog.String("driver", cfg.DBDriver))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("fiber shutdown", slog.String("error", err.Error()))
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logger.Error("rabbitmq close", slog.String("error", err.Error()))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			logger.Error("database close", slog.String("error", err.Error()))
		}
	}
	logger.Info("server gracefully stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("service", "catalog"))
}

// seedProducts creates a few demo products; existing ones are skipped.
func seedProducts(service *services.ProductService, logger *slog.Logger) {
	price := func(v float64) *float64 { return &v }
	stock := func(v int) *int { return &v }

	products := []dto.CreateProductRequest{
		{Title: "Men's Chill Crew Neck Sweatshirt", Price: price(75), Stock: stock(7), Sizes: []string{"XS", "S", "M", "L", "XL", "XXL"}, Gender: "men", Tags: []string{"sweatshirt"}, Images: []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"}},
		{Title: "Women's Cropped Puffer Jacket", Price: price(225), Stock: stock(85), Sizes: []string{"XS", "S", "M"}, Gender: "women", Tags: []string{"jacket"}, Images: []string{"1740535-00-A_0_2000.jpg"}},
		{Title: "Kids Cybertruck Tee", Price: price(30), Stock: stock(10), Sizes: []string{"XS", "S", "M"}, Gender: "kid", Tags: []string{"shirt"}, Images: []string{"8529342-00-A_0_2000.jpg"}},
		{Title: "Blue Mug", Price: price(12), Stock: stock(40), Sizes: []string{"M"}, Gender: "unisex", Tags: []string{"kitchen"}},
	}

	for _, p := range products {
		created, err := service.Create(context.Background(), p)
		if err != nil {
			logger.Warn("seed product skipped", slog.String("title", p.Title), slog.String("error", err.Error()))
			continue
		}
		logger.Info("seeded product", slog.String("title", created.Title), slog.String("id", created.ID))
	}
}
