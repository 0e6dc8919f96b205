package models

// FetchResult holds the fetched page plus the supplementary root resources.
// It is built once per audit and treated as read-only by every analyzer.
type FetchResult struct {
	URL           string
	FinalURL      string
	StatusCode    int
	HTML          string
	Headers       map[string]string
	RedirectChain []string
	RobotsTxt     string
	SitemapXML    string
	LlmsTxt       string
	Error         string
}

// Image describes one <img> element.
type Image struct {
	Src           string
	Alt           string
	Width         string
	Height        string
	Loading       string
	FetchPriority string
	Decoding      string
}

// Link describes one resolved anchor.
type Link struct {
	Href     string
	Text     string
	Rel      string
	NoFollow bool
}

// Script describes one external <script>.
type Script struct {
	Src   string
	Async bool
	Defer bool
	Type  string
}

// Hreflang is one rel=alternate language hint.
type Hreflang struct {
	Lang string
	Href string
}

// ListCounts counts list elements on the page.
type ListCounts struct {
	Unordered int
	Ordered   int
}

// SchemaBlock is one decoded JSON-LD block. Blocks that fail to decode are
// dropped by the parser and never reach an analyzer.
type SchemaBlock map[string]any

// Type returns the block's @type, unwrapping a type array to its first entry.
func (b SchemaBlock) Type() string {
	switch t := b["@type"].(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// ParsedPage holds every document fact the analyzers read. All collections
// default to empty, never nil checks required beyond len().
type ParsedPage struct {
	Title           string
	MetaDescription string
	MetaRobots      string
	Canonical       string
	Viewport        string
	Charset         string
	Language        string

	// Headings[0] is h1 .. Headings[5] is h6, each in document order.
	Headings [6][]string

	Images        []Image
	InternalLinks []Link
	ExternalLinks []Link
	Scripts       []Script
	Stylesheets   []string
	Schemas       []SchemaBlock
	OpenGraph     map[string]string
	TwitterCard   map[string]string
	Hreflang      []Hreflang

	Paragraphs []string
	Lists      ListCounts
	Videos     []string

	WordCount int
	BodyText  string
}

// HeadingTexts returns all heading texts from h1 through h6 in level order.
func (p *ParsedPage) HeadingTexts() []string {
	var all []string
	for _, level := range p.Headings {
		all = append(all, level...)
	}
	return all
}

// H returns the headings for a 1-based level.
func (p *ParsedPage) H(level int) []string {
	if level < 1 || level > 6 {
		return nil
	}
	return p.Headings[level-1]
}
