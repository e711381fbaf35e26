package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

var (
	ErrInvalidInput = errors.New("invalid summary input")
	ErrUnavailable  = errors.New("summary generation unavailable")
)

// Summarizer - внешняя функция, генерирующая краткое описание запроса.
type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (string, error)
}

type Servicer interface {
	Generate(ctx context.Context, title string, description *string) (string, error)
}

type Service struct {
	summarizer Summarizer
	log        *slog.Logger
}

func NewService(summarizer Summarizer, log *slog.Logger) *Service {
	return &Service{
		summarizer: summarizer,
		log:        log.With("component", "summary_service"),
	}
}

// Generate запрашивает краткое описание. Сохранять результат - задача вызывающего.
func (s *Service) Generate(ctx context.Context, title string, description *string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if s.summarizer == nil {
		return "", fmt.Errorf("%w: summarizer is not configured", ErrUnavailable)
	}

	desc := ""
	if description != nil {
		desc = *description
	}

	text, err := s.summarizer.Summarize(ctx, title, desc)
	if err != nil {
		s.log.Error("summarizer call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no summary generated", ErrUnavailable)
	}

	return text, nil
}
