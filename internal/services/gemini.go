package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/logger"
)

// TextGenerator is the single-shot generative-text capability the Model
// Caller retries.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiService interface {
	TextGenerator
	ModelName() string
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiService fails with *apperrors.ConfigurationError before any
// network traffic when apiKey is empty.
func NewGeminiService(ctx context.Context, apiKey, modelName string, temperature float32) (GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &apperrors.ConfigurationError{Key: "GEMINI_API_KEY", Message: "is required"}
	}
	if modelName == "" {
		return nil, &apperrors.ConfigurationError{Key: "GEMINI_MODEL", Message: "is required"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}, nil
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("no text content in response")
	}

	logger.Debug().
		Str("model", g.modelName).
		Int("prompt_chars", len(prompt)).
		Int("response_chars", len(text)).
		Msg("📊 Gemini response received")

	return text, nil
}
