package mock

import "github.com/fwojciec/sitechat"

var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitechat.Extractor.
type Extractor struct {
	ExtractFn func(markup, baseURL string) (*sitechat.Extraction, error)
}

func (e *Extractor) Extract(markup, baseURL string) (*sitechat.Extraction, error) {
	return e.ExtractFn(markup, baseURL)
}
