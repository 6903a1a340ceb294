package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/metrics"
)

const (
	FormatHTML = "html"
	FormatANSI = "ansi"
)

type MarkdownService interface {
	// Render converts source to the given format. An empty format means html.
	Render(ctx context.Context, source, format string) (string, error)
}

type htmlRenderer interface {
	Render(source string) string
}

type terminalRenderer interface {
	Render(source string) (string, error)
}

type markdownService struct {
	logger   *slog.Logger
	html     htmlRenderer
	terminal terminalRenderer
}

func NewMarkdownService(logger *slog.Logger, html htmlRenderer, terminal terminalRenderer) MarkdownService {
	return &markdownService{
		logger:   logger.With("component", "markdown_service"),
		html:     html,
		terminal: terminal,
	}
}

func (that *markdownService) Render(ctx context.Context, source, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if format == "" {
		format = FormatHTML
	}

	start := time.Now()

	var (
		output string
		err    error
	)

	switch format {
	case FormatHTML:
		output = that.html.Render(source)
	case FormatANSI:
		output, err = that.terminal.Render(source)
		if err != nil {
			return "", fmt.Errorf("failed to render for terminal: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownFormat, format)
	}

	metrics.MarkdownRenders.WithLabelValues(format).Inc()
	metrics.MarkdownRenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())

	that.logger.Debug("Markdown rendered", "format", format, "source_bytes", len(source), "output_bytes", len(output))

	return output, nil
}
