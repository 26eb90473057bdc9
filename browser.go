package sitechat

import "context"

// Rendering is the result of rendering one URL.
type Rendering struct {
	URL  string
	HTML string

	// Warnings collects non-fatal events (detached frames, in-page
	// script errors, failed engine recycling) observed while rendering.
	Warnings []RenderWarning
}

// RenderWarning is a non-fatal event observed during a render.
type RenderWarning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Render warning kinds.
const (
	WarningFrameDetached = "frame_detached"
	WarningPageError     = "page_error"
	WarningRecycle       = "browser_recycle"
)

// BrowserLauncher starts rendering-engine processes.
type BrowserLauncher interface {
	// Open launches one engine process and returns a session owning it.
	Open(ctx context.Context) (BrowserSession, error)
}

// BrowserSession owns exactly one rendering-engine process.
// A session must not be used by two crawls at once.
type BrowserSession interface {
	// Render navigates to url, waits for the page to settle and returns the
	// rendered markup. Failures are reported as *NavigationError.
	// The context controls cancellation.
	Render(ctx context.Context, url string) (*Rendering, error)

	// Close releases all pages and then the engine process.
	// Close is safe to call multiple times.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
