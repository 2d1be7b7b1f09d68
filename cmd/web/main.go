package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-predictor/internal/config"
	"alfredoptarigan/resume-predictor/internal/handlers"
	"alfredoptarigan/resume-predictor/internal/metrics"
	"alfredoptarigan/resume-predictor/internal/repositories"
	"alfredoptarigan/resume-predictor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Submission history is optional
	submissionRepo := repositories.NewNoopSubmissionRepository()
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		submissionRepo = repositories.NewSubmissionRepository(db)
		log.Println("✅ Submission history enabled")
	} else {
		log.Println("ℹ️  Submission history disabled")
	}

	panelMetrics := metrics.NewPanelMetrics()

	// Initialize services
	predictorService := services.NewPredictorService(cfg.Predictor.URL, cfg.Predictor.Timeout)
	log.Printf("✅ Predictor endpoint: %s\n", cfg.Predictor.URL)

	panelService := services.NewPanelService(predictorService, submissionRepo, panelMetrics)
	log.Println("✅ Panel initialized")

	app, err := handlers.NewApp(handlers.AppOptions{
		BodyLimit:     cfg.Upload.MaxFileSize,
		HistoryLimit:  cfg.History.Limit,
		AccessLogging: true,
	}, panelService, submissionRepo, panelMetrics)
	if err != nil {
		log.Fatalf("❌ Failed to build app: %v", err)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		panelService.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in a browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
