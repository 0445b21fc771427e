package services

import (
	"context"
	"sync"
	"time"
)

type stubReply struct {
	text string
	err  error
}

// stubGenerator returns replies in order and repeats the last one.
type stubGenerator struct {
	mu      sync.Mutex
	replies []stubReply
	prompts []string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	r := s.replies[idx]
	return r.text, r.err
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

type stubPDFParser struct {
	text  string
	err   error
	calls int
}

func (s *stubPDFParser) ExtractText(data []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubPDFParser) ExtractTextWithMetaData(data []byte) (*PDFContent, error) {
	text, err := s.ExtractText(data)
	if err != nil {
		return nil, err
	}
	return &PDFContent{Text: text, PageCount: 1}, nil
}
