// Package pipeline orchestrates resume parsing: text extraction, heuristic
// field parsing, and the structured-extraction fallback. The pipeline never
// fails; every sub-step failure is logged and absorbed, degrading to
// whatever was extracted so far.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campushire/parsume/internal/extract"
	"github.com/campushire/parsume/internal/fallback"
	"github.com/campushire/parsume/internal/metrics"
	"github.com/campushire/parsume/internal/models"
	"github.com/campushire/parsume/internal/parser"
	"github.com/campushire/parsume/pkg/utils"
)

// defaultFallbackTimeout bounds the fallback call when no explicit timeout
// is configured. The fallback is the only step with unbounded external cost
// (model loading, heavier inference), so it never runs without a deadline.
const defaultFallbackTimeout = 30 * time.Second

// Pipeline runs the extraction and parsing steps for one document at a time.
// It holds no mutable state; a single Pipeline is safe for concurrent use.
type Pipeline struct {
	extractor       *extract.Extractor
	parser          *parser.Parser
	fallback        fallback.Parser
	fallbackTimeout time.Duration
	logger          *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFallback enables the structured-extraction fallback. A non-positive
// timeout keeps the default.
func WithFallback(p fallback.Parser, timeout time.Duration) Option {
	return func(pl *Pipeline) {
		pl.fallback = p
		if timeout > 0 {
			pl.fallbackTimeout = timeout
		}
	}
}

// WithLogger sets a logger for parse events.
func WithLogger(l *zap.Logger) Option {
	return func(pl *Pipeline) { pl.logger = l }
}

// New creates a pipeline from an extractor and parser. Without WithFallback
// the heuristic result is final.
func New(extractor *extract.Extractor, p *parser.Parser, opts ...Option) *Pipeline {
	pl := &Pipeline{
		extractor:       extractor,
		parser:          p,
		fallbackTimeout: defaultFallbackTimeout,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// ParseDocument extracts text from the document at path and parses candidate
// fields from it. When the heuristic parse finds nothing at all, the
// fallback parser is consulted under a deadline and its values fill the
// still-empty fields; a fallback failure is logged and ignored. The returned
// fields are never nil — an empty result means the caller must fall back to
// manual entry, not that the upload failed.
func (p *Pipeline) ParseDocument(ctx context.Context, path string) *models.Fields {
	text := p.extractor.Extract(path)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if text == "" {
		p.logger.Warn("no text extracted", zap.String("path", path))
		metrics.ExtractionsTotal.WithLabelValues(format, "empty").Inc()
	} else {
		metrics.ExtractionsTotal.WithLabelValues(format, "ok").Inc()
	}

	fields := p.parser.Parse(text)

	if fields.Empty() && p.fallback != nil {
		fctx, cancel := context.WithTimeout(ctx, p.fallbackTimeout)
		more, err := p.fallback.ExtractAll(fctx, path)
		cancel()
		if err != nil {
			p.logger.Warn("fallback extraction failed", zap.String("path", path), zap.Error(err))
			metrics.FallbackTotal.WithLabelValues("error").Inc()
		} else {
			metrics.FallbackTotal.WithLabelValues("ok").Inc()
			fields.FillFrom(more)
		}
	}

	outcome := "parsed"
	if fields.Empty() {
		outcome = "empty"
	}
	metrics.ParsesTotal.WithLabelValues(outcome).Inc()
	p.logger.Debug("document parsed",
		zap.String("path", path),
		zap.String("outcome", outcome),
		zap.Int("skills", len(fields.Skills)),
		zap.String("text_preview", utils.Truncate(text, 120)),
	)
	return fields
}
