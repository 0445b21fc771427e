package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService. An empty string is a valid
// result; undecodable input is an *apperrors.ExtractionError.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData implements PDFParserService.
func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	// The pdf package panics on some malformed xref tables and streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &apperrors.ExtractionError{Err: fmt.Errorf("pdf decoder panic: %v", r)}
		}
	}()

	if len(data) == 0 {
		return nil, &apperrors.ExtractionError{Err: errors.New("empty file")}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &apperrors.ExtractionError{Err: fmt.Errorf("failed to open PDF: %w", err)}
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &apperrors.ExtractionError{Err: fmt.Errorf("failed to read page %d: %w", pageIndex, err)}
		}

		textBuilder.WriteString(text)
	}

	return &PDFContent{
		Text:      strings.TrimSpace(textBuilder.String()),
		PageCount: totalPage,
	}, nil
}
