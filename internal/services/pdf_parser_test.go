package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/pdftest"
)

func TestExtractText_ValidPDF(t *testing.T) {
	parser := NewPDFParserService()

	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{name: "two pages in order", pages: []string{"Hello Go", "Second page"}, want: "Hello Go\nSecond page"},
		{name: "single page", pages: []string{"  Go developer  "}, want: "Go developer"},
		{name: "blank page", pages: []string{""}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := parser.ExtractText(pdftest.Build(tt.pages...))

			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtractTextWithMetaData_PageCount(t *testing.T) {
	content, err := NewPDFParserService().ExtractTextWithMetaData(pdftest.Build("one", "", "three"))

	require.NoError(t, err)
	assert.Equal(t, 3, content.PageCount)
	assert.Equal(t, "one\nthree", content.Text)
}

func TestExtractText_InvalidInput(t *testing.T) {
	parser := NewPDFParserService()

	inputs := map[string][]byte{
		"empty":          {},
		"plain text":     []byte("this is not a pdf at all"),
		"header only":    []byte("%PDF-1.4\n"),
		"broken trailer": []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\nstartxref\n999999\n%%EOF"),
		"binary garbage": {0x00, 0xff, 0x10, 0x25, 0x50, 0x44, 0x46},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			var (
				text string
				err  error
			)
			require.NotPanics(t, func() {
				text, err = parser.ExtractText(data)
			})

			var extractionErr *apperrors.ExtractionError
			require.True(t, errors.As(err, &extractionErr), "expected ExtractionError, got %v", err)
			assert.Empty(t, text)
		})
	}
}

func TestExtractTextWithMetaData_InvalidInput(t *testing.T) {
	content, err := NewPDFParserService().ExtractTextWithMetaData([]byte("not a pdf"))

	assert.Nil(t, content)
	var extractionErr *apperrors.ExtractionError
	assert.True(t, errors.As(err, &extractionErr))
}
