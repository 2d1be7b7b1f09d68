package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-predictor/internal/metrics"
	"alfredoptarigan/resume-predictor/internal/repositories"
	"alfredoptarigan/resume-predictor/internal/services"
	"alfredoptarigan/resume-predictor/internal/views"
)

type AppOptions struct {
	BodyLimit     int64
	HistoryLimit  int
	AccessLogging bool
}

// NewApp wires the shell, the panel and the supporting endpoints into one fiber app.
func NewApp(
	opts AppOptions,
	panel services.PanelService,
	submissionRepo repositories.SubmissionRepository,
	panelMetrics *metrics.PanelMetrics,
) (*fiber.App, error) {
	engine, err := views.NewEngine()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "Resume Predictor System",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(opts.BodyLimit),
		ErrorHandler: customErrorHandler,
		Views:        engine,
	})

	app.Use(recover.New())
	if opts.AccessLogging {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(panelMetrics.Middleware())

	panelHandler := NewPanelHandler(panel)
	shellHandler := NewShellHandler(panel)
	historyHandler := NewHistoryHandler(submissionRepo, opts.HistoryLimit)

	// Browser routes
	app.Get("/", panelHandler.HandleIndex)
	app.Post("/select", panelHandler.HandleSelect)
	app.Post("/analyze", panelHandler.HandleAnalyze)
	app.Post("/clear", shellHandler.HandleClear)

	app.Get("/metrics", adaptor.HTTPHandler(panelMetrics.Handler()))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/panel", panelHandler.HandleState)
	api.Post("/panel/select", panelHandler.HandleSelect)
	api.Post("/panel/analyze", panelHandler.HandleAnalyze)
	api.Post("/panel/clear", shellHandler.HandleClear)
	api.Get("/history", historyHandler.HandleGetHistory)

	return app, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
