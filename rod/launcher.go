package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Ensure Launcher implements sitechat.BrowserLauncher at compile time.
var _ sitechat.BrowserLauncher = (*Launcher)(nil)

const (
	// DefaultNavigationTimeout bounds navigation and load of a single URL.
	DefaultNavigationTimeout = 60 * time.Second

	// DefaultOperationTimeout bounds a whole Render call.
	DefaultOperationTimeout = 90 * time.Second

	// DefaultSettleDelay is waited after the network goes idle so that
	// late scripts can finish mutating the DOM.
	DefaultSettleDelay = 2 * time.Second

	// DefaultIdleWindow is how long the network must be quiet to count
	// as idle.
	DefaultIdleWindow = 500 * time.Millisecond

	// DefaultMaxRenders is the number of renders after which a session
	// replaces its engine process. Chrome's memory baseline grows under
	// load and never returns to its initial level.
	DefaultMaxRenders = 75

	// DefaultUserAgent is sent with every navigation.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Desktop viewport used for every page.
	DefaultViewportWidth  = 1366
	DefaultViewportHeight = 768
)

// Launcher starts headless Chrome processes.
type Launcher struct {
	navTimeout time.Duration
	opTimeout  time.Duration
	settle     time.Duration
	idle       time.Duration
	maxRenders int
	userAgent  string
	bin        string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithNavigationTimeout sets the per-URL navigation timeout.
func WithNavigationTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.navTimeout = d
	}
}

// WithOperationTimeout sets the overall timeout of one Render call.
func WithOperationTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.opTimeout = d
	}
}

// WithSettleDelay sets the delay waited after the network goes idle.
func WithSettleDelay(d time.Duration) Option {
	return func(l *Launcher) {
		l.settle = d
	}
}

// WithIdleWindow sets how long the network must be quiet before the
// page counts as rendered.
func WithIdleWindow(d time.Duration) Option {
	return func(l *Launcher) {
		l.idle = d
	}
}

// WithMaxRenders sets the number of renders after which the engine
// process is replaced. Zero disables recycling.
func WithMaxRenders(n int) Option {
	return func(l *Launcher) {
		l.maxRenders = n
	}
}

// WithUserAgent overrides the user agent sent with every navigation.
func WithUserAgent(ua string) Option {
	return func(l *Launcher) {
		l.userAgent = ua
	}
}

// WithBrowserPath uses the Chrome binary at path instead of looking one
// up or downloading it.
func WithBrowserPath(path string) Option {
	return func(l *Launcher) {
		l.bin = path
	}
}

// NewLauncher creates a Launcher with the default timeouts.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		navTimeout: DefaultNavigationTimeout,
		opTimeout:  DefaultOperationTimeout,
		settle:     DefaultSettleDelay,
		idle:       DefaultIdleWindow,
		maxRenders: DefaultMaxRenders,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open launches a browser process and returns a session that owns it.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func (l *Launcher) Open(ctx context.Context) (sitechat.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, proc, err := l.launch()
	if err != nil {
		return nil, err
	}

	return &Session{
		launcher: l,
		browser:  browser,
		proc:     proc,
	}, nil
}

// launch starts a Chrome process with stability flags and connects to it.
// The process is not tied to ctx; it lives until the session is closed.
func (l *Launcher) launch() (*rod.Browser, *launcher.Launcher, error) {
	proc := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if l.bin != "" {
		proc = proc.Bin(l.bin)
	}

	u, err := proc.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		proc.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return browser, proc, nil
}
