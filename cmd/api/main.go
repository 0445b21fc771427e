package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/server"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	logger.Info().Msg("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	logger.Info().Str("model", geminiService.ModelName()).Msg("✅ Gemini AI initialized successfully")

	// Initialize services
	modelCaller := services.NewModelCaller(geminiService, services.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.InitialDelay,
	})
	analyzerService := services.NewAnalyzerService(
		services.NewPDFParserService(),
		modelCaller,
		services.AnalyzerOptions{
			WithKeywordExtraction: cfg.Analysis.WithKeywordExtraction,
			StrictResultSchema:    cfg.Analysis.StrictResultSchema,
		},
	)
	logger.Info().
		Str("input_mode", cfg.Analysis.InputMode).
		Bool("keyword_extraction", cfg.Analysis.WithKeywordExtraction).
		Bool("strict_schema", cfg.Analysis.StrictResultSchema).
		Msg("✅ Analyzer service initialized")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(handlers.NewInputAdapter(cfg), analyzerService)

	app := server.New(cfg, analyzeHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}
