package server

import (
	"io"
	"log/slog"
	"time"

	"catalog/internal/files"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries everything the HTTP layer is built from.
type Options struct {
	ProductService *services.ProductService
	UploadFilter   *files.Filter
	Logger         *slog.Logger
	// BodyLimit caps request bodies, uploads included. Zero keeps fiber's default.
	BodyLimit int
	// Registry receives the HTTP metrics and backs /metrics. Nil creates a private one.
	Registry *prometheus.Registry
	// RequestLog receives one access log line per request. Nil disables it.
	RequestLog io.Writer
	// Ping reports store health for /health. Nil reports "unknown".
	Ping func() error
}

// New builds the fiber application with all routes registered.
func New(opts Options) *fiber.App {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.UploadFilter == nil {
		opts.UploadFilter = files.NewFilter(nil)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    opts.BodyLimit,
		// Params and queries outlive the handler in logs and errors.
		Immutable: true,
		// Terms such as "blue%20mug" must reach the lookup decoded.
		UnescapePath: true,
	})

	app.Use(recover.New())
	if opts.RequestLog != nil {
		app.Use(logger.New(logger.Config{Output: opts.RequestLog}))
	}
	app.Use(middleware.NewMetrics(opts.Registry).Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	app.Get("/health", healthHandler(opts.Ping))

	api := app.Group("/api")
	handlers.NewProductHandler(opts.ProductService).RegisterRoutes(api)
	handlers.NewFilesHandler(opts.UploadFilter, opts.Logger).RegisterRoutes(api)

	return app
}

func healthHandler(ping func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database := "healthy", "unknown"
		code := fiber.StatusOK
		if ping != nil {
			database = "up"
			if err := ping(); err != nil {
				status, database = "unhealthy", "down"
				code = fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
