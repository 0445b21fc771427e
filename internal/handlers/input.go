package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/models"
)

const (
	FieldResume         = "resume"
	FieldJobDescription = "job_description"
)

// InputAdapter turns an HTTP request into an AnalysisRequest. Any problem
// with the input is reported as *apperrors.ValidationError.
type InputAdapter interface {
	Parse(c *fiber.Ctx) (*models.AnalysisRequest, error)
}

// NewInputAdapter picks the adapter for the configured INPUT_MODE.
func NewInputAdapter(cfg *config.Config) InputAdapter {
	if cfg.Analysis.InputMode == config.InputModeJSON {
		return NewJSONInput()
	}
	return NewMultipartInput(cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions)
}

type multipartInput struct {
	maxFileSize       int64
	allowedExtensions []string
}

// NewMultipartInput accepts a PDF upload in the "resume" field and the job
// description in the "job_description" field.
func NewMultipartInput(maxFileSize int64, allowedExtensions []string) InputAdapter {
	return &multipartInput{
		maxFileSize:       maxFileSize,
		allowedExtensions: allowedExtensions,
	}
}

func (m *multipartInput) Parse(c *fiber.Ctx) (*models.AnalysisRequest, error) {
	file, err := c.FormFile(FieldResume)
	if err != nil || file == nil || file.Filename == "" {
		return nil, apperrors.NewValidationError(FieldResume, "resume file is required")
	}

	jobDescription := strings.TrimSpace(c.FormValue(FieldJobDescription))
	if jobDescription == "" {
		return nil, apperrors.NewValidationError(FieldJobDescription, "job description is required")
	}

	// Checked before the upload is opened.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !m.allowed(ext) {
		return nil, apperrors.NewValidationError(FieldResume,
			fmt.Sprintf("invalid file type %q, allowed: %s", ext, strings.Join(m.allowedExtensions, ", ")))
	}

	if m.maxFileSize > 0 && file.Size > m.maxFileSize {
		return nil, apperrors.NewValidationError(FieldResume,
			fmt.Sprintf("file too large. Max size: %d bytes", m.maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError(FieldResume, "resume file is empty")
	}

	return &models.AnalysisRequest{
		ResumePDF:      data,
		ResumeFilename: file.Filename,
		JobDescription: jobDescription,
	}, nil
}

func (m *multipartInput) allowed(ext string) bool {
	for _, a := range m.allowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

type jsonInput struct {
	validate *validator.Validate
}

// NewJSONInput accepts {"resume": "<extracted text>", "job_description": "..."}.
func NewJSONInput() InputAdapter {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &jsonInput{validate: v}
}

func (j *jsonInput) Parse(c *fiber.Ctx) (*models.AnalysisRequest, error) {
	var req models.AnalyzeJSONRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("", "invalid request payload")
	}

	req.Resume = strings.TrimSpace(req.Resume)
	req.JobDescription = strings.TrimSpace(req.JobDescription)

	if err := j.validate.Struct(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			field := validationErrs[0].Field()
			return nil, apperrors.NewValidationError(field, fmt.Sprintf("%s is required", field))
		}
		return nil, apperrors.NewValidationError("", "invalid request payload")
	}

	return &models.AnalysisRequest{
		ResumeText:     req.Resume,
		JobDescription: req.JobDescription,
	}, nil
}
