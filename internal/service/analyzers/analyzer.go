package analyzers

import (
	"context"
	"regexp"

	"seo_audit_engine/internal/domain/models"
)

// Analyzer is the contract every scoring category implements. Analyze must be
// total for well-formed inputs: it never fails, and the returned score is
// always within [0,100]. Analyzers share no mutable state, so they are safe
// to run in any order.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult
}

var wordRe = regexp.MustCompile(`\b\w+\b`)

// countWords counts word tokens the same way the parser does for the page
// word count.
func countWords(text string) int {
	return len(wordRe.FindAllString(text, -1))
}
