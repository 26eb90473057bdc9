package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitechat/bloom"
)

// Target is a URL waiting to be rendered, with its distance from the seed.
type Target struct {
	URL   string
	Depth int
}

// Frontier is a breadth-first queue of same-host URLs with Bloom filter
// deduplication. It is not safe for concurrent use; one crawl owns it.
type Frontier struct {
	host  string
	seen  *bloom.Filter
	queue []Target
}

// NewFrontier creates a Frontier that accepts only URLs on seed's host,
// sized for n expected URLs.
func NewFrontier(seed string, n uint) (*Frontier, error) {
	u, err := url.Parse(seed)
	if err != nil {
		return nil, err
	}
	return &Frontier{
		host: strings.ToLower(u.Host),
		seen: bloom.NewFilter(n, bloom.DefaultFalsePositiveRate),
	}, nil
}

// Push queues rawURL at depth. It returns false if the URL is off-host,
// not http(s), or already seen. Fragments are stripped before
// deduplication.
func (f *Frontier) Push(rawURL string, depth int) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if strings.ToLower(u.Host) != f.host {
		return false
	}
	u.Fragment = ""
	u.RawFragment = ""
	key := u.String()

	if !f.seen.Visit(key) {
		return false
	}
	f.queue = append(f.queue, Target{URL: key, Depth: depth})
	return true
}

// Pop returns the oldest queued target.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Target, bool) {
	if len(f.queue) == 0 {
		return Target{}, false
	}
	t := f.queue[0]
	f.queue = f.queue[1:]
	return t, true
}

// Len returns the number of queued targets.
func (f *Frontier) Len() int {
	return len(f.queue)
}
