package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with call logging.
type LoggingGenerator struct {
	next   sitechat.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next sitechat.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs the model, prompt size and latency of each call.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"model", g.next.Model(),
			"prompt_bytes", len(prompt),
			"reply_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}

// Model delegates to the wrapped generator.
func (g *LoggingGenerator) Model() string {
	return g.next.Model()
}
