package services

import (
	"context"
	"errors"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/models"
)

// AnalyzerService runs one résumé/job-description pair through the whole
// pipeline: extraction, optional keyword extraction, prompt, model call,
// sanitizing.
type AnalyzerService interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*AnalysisOutcome, error)
}

type AnalyzerOptions struct {
	WithKeywordExtraction bool
	StrictResultSchema    bool
}

// AnalysisOutcome holds the sanitized model object and, when the schema
// check ran, its typed form.
type AnalysisOutcome struct {
	Object map[string]any
	Result *models.AnalysisResult
}

// Payload is what the API sends back.
func (o *AnalysisOutcome) Payload() any {
	if o.Result != nil {
		return o.Result
	}
	return o.Object
}

type analyzerService struct {
	pdfParser     PDFParserService
	modelCaller   ModelCaller
	promptBuilder *PromptBuilder
	opts          AnalyzerOptions
}

func NewAnalyzerService(
	pdfParser PDFParserService,
	modelCaller ModelCaller,
	opts AnalyzerOptions,
) AnalyzerService {
	return &analyzerService{
		pdfParser:     pdfParser,
		modelCaller:   modelCaller,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}
}

func (a *analyzerService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*AnalysisOutcome, error) {
	log := logger.Ctx(ctx)

	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, apperrors.NewValidationError("job_description", "job description is required")
	}

	resumeText := req.ResumeText
	if !req.HasExtractedText() {
		log.Info().Str("filename", req.ResumeFilename).Int("bytes", len(req.ResumePDF)).Msg("📄 Extracting resume text...")
		text, err := a.pdfParser.ExtractText(req.ResumePDF)
		if err != nil {
			var extractionErr *apperrors.ExtractionError
			if !errors.As(err, &extractionErr) {
				err = &apperrors.ExtractionError{Err: err}
			}
			return nil, err
		}
		resumeText = text
	}
	log.Debug().Int("resume_chars", len(resumeText)).Msg("resume text ready")

	var prompt string
	if a.opts.WithKeywordExtraction {
		log.Info().Msg("🔍 Extracting keywords from job description...")
		keywords, err := a.modelCaller.Call(ctx, a.promptBuilder.BuildKeywordExtractionPrompt(req.JobDescription))
		if err != nil {
			return nil, err
		}
		prompt = a.promptBuilder.BuildEvaluationPrompt(resumeText, keywords)
	} else {
		prompt = a.promptBuilder.BuildEvaluationPromptFromJD(resumeText, req.JobDescription)
	}

	log.Info().Int("prompt_chars", len(prompt)).Msg("🤖 Evaluating resume with LLM...")
	reply, err := a.modelCaller.Call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	obj, err := SanitizeResponse(reply)
	if err != nil {
		return nil, err
	}

	outcome := &AnalysisOutcome{Object: obj}
	if a.opts.StrictResultSchema {
		result, err := ValidateResult(obj)
		if err != nil {
			return nil, err
		}
		outcome.Result = result
	}

	log.Info().Msg("✅ Analysis completed")
	return outcome, nil
}
