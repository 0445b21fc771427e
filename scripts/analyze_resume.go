package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

// Runs the analysis pipeline on a local résumé without starting the server:
//
//	go run ./scripts --resume cv.pdf --jd-file job.txt
func main() {
	var (
		resumePath string
		jdFile     string
		jdText     string
		envFile    string
		noKeywords bool
		lenient    bool
	)
	pflag.StringVarP(&resumePath, "resume", "r", "", "Path to the resume PDF")
	pflag.StringVar(&jdFile, "jd-file", "", "Path to a text file with the job description")
	pflag.StringVar(&jdText, "jd", "", "Job description text (used when --jd-file is empty)")
	pflag.StringVar(&envFile, "env-file", ".env", "Path to the .env file")
	pflag.BoolVar(&noKeywords, "no-keywords", false, "Embed the raw job description instead of extracted keywords")
	pflag.BoolVar(&lenient, "lenient", false, "Skip the result schema check")
	pflag.Parse()

	cfg := config.Load(envFile)
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: "pretty"})

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("❌ Invalid configuration")
	}

	if resumePath == "" {
		logger.Fatal().Msg("❌ --resume is required")
	}
	if ext, ok := cfg.Upload.AllowsFile(resumePath); !ok {
		logger.Fatal().
			Str("ext", ext).
			Strs("allowed", cfg.Upload.AllowedExtensions).
			Msg("❌ Resume file type not allowed")
	}

	if jdFile != "" {
		raw, err := os.ReadFile(jdFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("❌ Failed to read job description file")
		}
		jdText = string(raw)
	}
	if strings.TrimSpace(jdText) == "" {
		logger.Fatal().Msg("❌ Provide the job description with --jd or --jd-file")
	}

	data, err := os.ReadFile(resumePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to read resume")
	}

	pdfParser := services.NewPDFParserService()
	content, err := pdfParser.ExtractTextWithMetaData(data)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to extract text")
	}
	logger.Info().
		Int("pages", content.PageCount).
		Int("chars", len(content.Text)).
		Msg("📖 Extracted resume text")

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini")
	}

	analyzer := services.NewAnalyzerService(
		pdfParser,
		services.NewModelCaller(geminiService, services.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.InitialDelay,
		}),
		services.AnalyzerOptions{
			WithKeywordExtraction: cfg.Analysis.WithKeywordExtraction && !noKeywords,
			StrictResultSchema:    cfg.Analysis.StrictResultSchema && !lenient,
		},
	)

	outcome, err := analyzer.Analyze(ctx, &models.AnalysisRequest{
		ResumeText:     content.Text,
		ResumeFilename: filepath.Base(resumePath),
		JobDescription: jdText,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(outcome.Payload()); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to write result")
	}
}
