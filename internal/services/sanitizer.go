package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/models"
)

const (
	keyJDMatch         = "JD Match"
	keyMissingKeywords = "MissingKeywords"
	keyProfileSummary  = "Profile Summary"
)

// SanitizeResponse extracts the JSON object embedded in a model reply.
// Everything from the first '{' to the last '}' is the candidate; stray
// code-fence markers are removed before parsing.
func SanitizeResponse(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &apperrors.MalformedResponseError{Raw: raw, Reason: "no JSON object found"}
	}

	candidate := stripCodeFences(raw[start : end+1])

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &apperrors.MalformedResponseError{Raw: candidate, Reason: "invalid JSON", Err: err}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &apperrors.MalformedResponseError{Raw: candidate, Reason: "JSON value is not an object"}
	}
	return obj, nil
}

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ValidateResult checks that a sanitized object carries the three expected
// keys with the expected shapes.
func ValidateResult(obj map[string]any) (*models.AnalysisResult, error) {
	var problems []string

	match, ok := obj[keyJDMatch].(string)
	switch {
	case !ok:
		problems = append(problems, fmt.Sprintf("%q must be a string", keyJDMatch))
	case !strings.HasSuffix(strings.TrimSpace(match), "%"):
		problems = append(problems, fmt.Sprintf("%q must end with %%", keyJDMatch))
	}

	var keywords []string
	rawKeywords, ok := obj[keyMissingKeywords].([]any)
	if !ok {
		problems = append(problems, fmt.Sprintf("%q must be a list", keyMissingKeywords))
	}
	for i, item := range rawKeywords {
		s, ok := item.(string)
		if !ok {
			problems = append(problems, fmt.Sprintf("%q[%d] must be a string", keyMissingKeywords, i))
			continue
		}
		keywords = append(keywords, s)
	}

	summary, ok := obj[keyProfileSummary].(string)
	if !ok {
		problems = append(problems, fmt.Sprintf("%q must be a string", keyProfileSummary))
	}

	if len(problems) > 0 {
		raw, _ := json.Marshal(obj)
		return nil, &apperrors.MalformedResponseError{
			Raw:    string(raw),
			Reason: "schema mismatch",
			Err:    errors.New(strings.Join(problems, "; ")),
		}
	}

	if keywords == nil {
		keywords = []string{}
	}
	return &models.AnalysisResult{
		JDMatch:         strings.TrimSpace(match),
		MissingKeywords: keywords,
		ProfileSummary:  summary,
	}, nil
}
