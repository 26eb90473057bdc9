// Package goquery extracts document fields from rendered HTML using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitechat"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

const (
	// boilerplateSelector matches elements dropped before text extraction.
	boilerplateSelector = "script, style, nav, header, footer, aside"

	// contentSelector matches the elements whose text forms the document.
	contentSelector = "h1, h2, h3, h4, h5, h6, p, article, section, main"
)

// DefaultTitle is used for pages without a title or with a blank one.
const DefaultTitle = "No Title"

// Extractor implements sitechat.Extractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses markup and returns its text, images, links and metadata.
func (e *Extractor) Extract(markup string, baseURL string) (*sitechat.Extraction, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &sitechat.Extraction{
		Title:    collapseWhitespace(doc.Find("title").First().Text()),
		Metadata: extractMetadata(doc),
	}
	if result.Title == "" {
		result.Title = DefaultTitle
	}

	doc.Find(boilerplateSelector).Remove()

	result.Text = extractText(doc)
	result.WordCount = sitechat.WordCount(result.Text)
	result.Images = extractImages(doc, base)
	result.Links = extractLinks(doc, base)

	return result, nil
}

// extractText concatenates content elements in document order and falls
// back to the whole body when none carry text.
func extractText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find(contentSelector).Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(strings.TrimSpace(sel.Text()))
		sb.WriteString("\n")
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}
	return collapseWhitespace(text)
}

// collapseWhitespace replaces whitespace runs with a single space and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractImages(doc *goquery.Document, base *url.URL) []string {
	images := []string{}
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" {
			return true
		}
		if resolved := resolveURL(base, src); resolved != "" {
			images = append(images, resolved)
		}
		return len(images) < sitechat.MaxImages
	})
	return images
}

func extractLinks(doc *goquery.Document, base *url.URL) []string {
	links := []string{}
	seen := make(map[string]bool)
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || isSkippedLink(href) {
			return true
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return true
		}
		seen[resolved] = true
		links = append(links, resolved)
		return len(links) < sitechat.MaxLinks
	})
	return links
}

func extractMetadata(doc *goquery.Document) sitechat.DocumentMetadata {
	meta := sitechat.DocumentMetadata{
		Description: metaContent(doc, "description"),
		Author:      metaContent(doc, "author"),
		Keywords:    []string{},
	}
	if keywords := metaContent(doc, "keywords"); keywords != "" {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Keywords = append(meta.Keywords, kw)
			}
		}
	}
	return meta
}

func metaContent(doc *goquery.Document, name string) string {
	return doc.Find(`meta[name="` + name + `"]`).First().AttrOr("content", "")
}

// resolveURL resolves href against base. Returns empty string if href
// cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSkippedLink reports fragment-only anchors and links that cannot be
// navigated to.
func isSkippedLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:")
}
