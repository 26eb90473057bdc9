package sitechat

// Extraction holds the fields ContentExtractor derives from rendered markup.
type Extraction struct {
	Title     string
	Text      string
	Images    []string
	Links     []string
	Metadata  DocumentMetadata
	WordCount int
}

// Extractor turns rendered page markup into document fields.
type Extractor interface {
	// Extract parses markup and resolves every URL against baseURL.
	// Extract is pure: it performs no I/O.
	Extract(markup string, baseURL string) (*Extraction, error)
}
