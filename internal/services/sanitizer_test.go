package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
)

func TestSanitizeResponse_FencedReply(t *testing.T) {
	raw := "Here you go:\n```json\n{\"JD Match\":\"72%\",\"MissingKeywords\":[\"Go\"],\"Profile Summary\":\"ok\"}\n```"

	obj, err := SanitizeResponse(raw)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"JD Match":        "72%",
		"MissingKeywords": []any{"Go"},
		"Profile Summary": "ok",
	}, obj)
}

func TestSanitizeResponse_PlainObject(t *testing.T) {
	obj, err := SanitizeResponse(`  {"JD Match": "10%", "MissingKeywords": [], "Profile Summary": ""}  `)

	require.NoError(t, err)
	assert.Equal(t, "10%", obj["JD Match"])
}

func TestSanitizeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "no braces", raw: "I cannot evaluate this resume.", reason: "no JSON object found"},
		{name: "only closing brace", raw: "oops }", reason: "no JSON object found"},
		{name: "reversed braces", raw: "} then {", reason: "no JSON object found"},
		{name: "invalid json", raw: "{\"JD Match\": 72%}", reason: "invalid JSON"},
		{name: "empty", raw: "", reason: "no JSON object found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeResponse(tt.raw)

			var malformed *apperrors.MalformedResponseError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.reason, malformed.Reason)
		})
	}
}

func TestSanitizeResponse_KeepsRawForDiagnostics(t *testing.T) {
	_, err := SanitizeResponse("prefix {not json} suffix")

	var malformed *apperrors.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "{not json}", malformed.Raw)
}

func TestValidateResult(t *testing.T) {
	result, err := ValidateResult(map[string]any{
		"JD Match":        " 72% ",
		"MissingKeywords": []any{"Go", "Kafka"},
		"Profile Summary": "Strong backend profile.",
	})

	require.NoError(t, err)
	assert.Equal(t, "72%", result.JDMatch)
	assert.Equal(t, []string{"Go", "Kafka"}, result.MissingKeywords)
	assert.Equal(t, "Strong backend profile.", result.ProfileSummary)
}

func TestValidateResult_EmptyKeywordsStayAList(t *testing.T) {
	result, err := ValidateResult(map[string]any{
		"JD Match":        "100%",
		"MissingKeywords": []any{},
		"Profile Summary": "",
	})

	require.NoError(t, err)
	assert.NotNil(t, result.MissingKeywords)
	assert.Empty(t, result.MissingKeywords)
}

func TestValidateResult_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]any
	}{
		{name: "missing keys", obj: map[string]any{"JD Match": "50%"}},
		{name: "match without percent", obj: map[string]any{
			"JD Match": "50", "MissingKeywords": []any{}, "Profile Summary": "x",
		}},
		{name: "numeric match", obj: map[string]any{
			"JD Match": 50.0, "MissingKeywords": []any{}, "Profile Summary": "x",
		}},
		{name: "keywords not strings", obj: map[string]any{
			"JD Match": "50%", "MissingKeywords": []any{"Go", 3.0}, "Profile Summary": "x",
		}},
		{name: "keywords as string", obj: map[string]any{
			"JD Match": "50%", "MissingKeywords": "Go, Kafka", "Profile Summary": "x",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateResult(tt.obj)

			var malformed *apperrors.MalformedResponseError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, "schema mismatch", malformed.Reason)
		})
	}
}
