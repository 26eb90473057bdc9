package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Session implements sitechat.BrowserSession at compile time.
var _ sitechat.BrowserSession = (*Session)(nil)

// Session owns one Chrome process at a time. Renders are serialized.
type Session struct {
	launcher *Launcher

	mu      sync.Mutex
	browser *rod.Browser
	proc    *launcher.Launcher
	renders int

	closed atomic.Bool
}

// Render navigates to url and returns the rendered HTML once the network
// has been idle and the settle delay has passed.
func (s *Session) Render(ctx context.Context, url string) (*sitechat.Rendering, error) {
	if s.closed.Load() {
		return nil, sitechat.Errorf(sitechat.EINVALID, "browser session is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, &sitechat.NavigationError{URL: url, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.launcher.opTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "browser session is closed")
	}
	var warnings warningLog
	if err := s.recycleLocked(); err != nil {
		warnings.add(sitechat.WarningRecycle, err.Error())
	}
	s.renders++

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &sitechat.NavigationError{URL: url, Err: fmt.Errorf("opening page: %w", err)}
	}
	defer page.Close()

	p := page.Context(ctx)

	if err := s.emulate(p); err != nil {
		return nil, &sitechat.NavigationError{URL: url, Err: err}
	}

	waitEvents := p.EachEvent(
		func(e *proto.PageFrameDetached) {
			warnings.add(sitechat.WarningFrameDetached, fmt.Sprintf("frame %s detached (%s)", e.FrameID, e.Reason))
		},
		func(e *proto.RuntimeExceptionThrown) {
			warnings.add(sitechat.WarningPageError, exceptionText(e))
		},
	)
	go waitEvents()

	if err := s.navigate(p, url); err != nil {
		return nil, &sitechat.NavigationError{URL: url, Err: err}
	}

	if s.launcher.settle > 0 {
		timer := time.NewTimer(s.launcher.settle)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, &sitechat.NavigationError{URL: url, Err: ctx.Err()}
		}
	}

	html, err := p.HTML()
	if err != nil {
		return nil, &sitechat.NavigationError{URL: url, Err: fmt.Errorf("reading html: %w", err)}
	}

	return &sitechat.Rendering{
		URL:      url,
		HTML:     html,
		Warnings: warnings.list(),
	}, nil
}

func (s *Session) emulate(p *rod.Page) error {
	if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.launcher.userAgent}); err != nil {
		return fmt.Errorf("setting user agent: %w", err)
	}
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             DefaultViewportWidth,
		Height:            DefaultViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("setting viewport: %w", err)
	}
	return nil
}

// navigate loads url and waits for network idle within the navigation
// timeout.
func (s *Session) navigate(p *rod.Page, url string) error {
	nav := p.Timeout(s.launcher.navTimeout)
	defer nav.CancelTimeout()

	waitIdle := nav.WaitRequestIdle(s.launcher.idle, nil, nil, nil)
	if err := nav.Navigate(url); err != nil {
		return err
	}
	if err := nav.WaitLoad(); err != nil {
		return err
	}
	waitIdle()

	return nav.GetContext().Err()
}

// recycleLocked replaces the browser process once it has served
// maxRenders pages. If the new launch fails the old process is kept and
// the next attempt waits for another maxRenders pages.
// Must be called with mu held.
func (s *Session) recycleLocked() error {
	if s.launcher.maxRenders <= 0 || s.renders < s.launcher.maxRenders {
		return nil
	}
	s.renders = 0

	browser, proc, err := s.launcher.launch()
	if err != nil {
		return fmt.Errorf("recycling browser: %w", err)
	}

	closeErr := s.browser.Close()
	s.proc.Kill()
	s.browser = browser
	s.proc = proc
	if closeErr != nil {
		return fmt.Errorf("closing recycled browser: %w", closeErr)
	}
	return nil
}

// Close closes every open page, then the browser, then kills the
// process. Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.browser != nil {
		if pages, err := s.browser.Pages(); err != nil {
			errs = append(errs, fmt.Errorf("listing pages: %w", err))
		} else {
			for _, page := range pages {
				if err := page.Close(); err != nil {
					errs = append(errs, fmt.Errorf("closing page: %w", err))
				}
			}
		}
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		s.browser = nil
	}
	if s.proc != nil {
		s.proc.Kill()
		s.proc = nil
	}

	return errors.Join(errs...)
}

// LauncherPID returns the process ID of the running browser.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return 0
	}
	return s.proc.PID()
}

// warningLog collects events delivered on rod's event goroutine.
type warningLog struct {
	mu       sync.Mutex
	warnings []sitechat.RenderWarning
}

func (w *warningLog) add(kind, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warnings = append(w.warnings, sitechat.RenderWarning{Kind: kind, Message: message})
}

func (w *warningLog) list() []sitechat.RenderWarning {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]sitechat.RenderWarning(nil), w.warnings...)
}

func exceptionText(e *proto.RuntimeExceptionThrown) string {
	if e.ExceptionDetails == nil {
		return "uncaught exception"
	}
	d := e.ExceptionDetails
	if d.Exception != nil && d.Exception.Description != "" {
		return d.Exception.Description
	}
	return d.Text
}
