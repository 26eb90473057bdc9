// Package slog provides logging decorators for sitechat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

var (
	_ sitechat.BrowserLauncher = (*LoggingLauncher)(nil)
	_ sitechat.BrowserSession  = (*LoggingSession)(nil)
)

// LoggingLauncher wraps a BrowserLauncher so that it logs process starts
// and hands out logging sessions.
type LoggingLauncher struct {
	next   sitechat.BrowserLauncher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next sitechat.BrowserLauncher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Open logs the launch and wraps the session.
func (l *LoggingLauncher) Open(ctx context.Context) (session sitechat.BrowserSession, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("browser open",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	session, err = l.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, l.logger), nil
}

// LoggingSession wraps a BrowserSession with render logging.
type LoggingSession struct {
	next   sitechat.BrowserSession
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next sitechat.BrowserSession, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Render logs the URL, size, warning count and duration of each render.
func (s *LoggingSession) Render(ctx context.Context, url string) (r *sitechat.Rendering, err error) {
	defer func(begin time.Time) {
		var size, warnings int
		if r != nil {
			size = len(r.HTML)
			warnings = len(r.Warnings)
		}
		s.logger.Info("render",
			"url", url,
			"bytes", size,
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Render(ctx, url)
}

// Close logs release failures and returns them unchanged.
func (s *LoggingSession) Close() error {
	err := s.next.Close()
	if err != nil {
		s.logger.Warn("browser close", "err", err)
	}
	return err
}
