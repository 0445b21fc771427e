package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

const HeaderRequestID = "X-Request-ID"

type AnalyzeHandler struct {
	input    InputAdapter
	analyzer services.AnalyzerService
}

func NewAnalyzeHandler(input InputAdapter, analyzer services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{
		input:    input,
		analyzer: analyzer,
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	requestID := uuid.New().String()
	c.Set(HeaderRequestID, requestID)
	ctx := logger.WithRequestID(c.UserContext(), requestID)

	req, err := h.input.Parse(c)
	if err != nil {
		return h.respondError(ctx, c, err)
	}

	outcome, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		return h.respondError(ctx, c, err)
	}

	return c.Status(fiber.StatusOK).JSON(outcome.Payload())
}

func (h *AnalyzeHandler) respondError(ctx context.Context, c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	log := logger.Ctx(ctx)

	var malformedErr *apperrors.MalformedResponseError
	switch {
	case errors.As(err, &malformedErr):
		log.Error().Err(err).Str("raw_response", malformedErr.Raw).Msg("❌ Unparsable model response")
	case status >= fiber.StatusInternalServerError:
		log.Error().Err(err).Msg("❌ Analysis failed")
	default:
		log.Warn().Err(err).Msg("⚠️ Rejected analysis request")
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: apperrors.PublicMessage(err),
	})
}
