package analyzers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"seo_audit_engine/internal/domain/models"
)

// OnPage checks heading structure, internal linking, URL shape and social
// markup.
type OnPage struct{}

func NewOnPage() *OnPage {
	return &OnPage{}
}

func (a *OnPage) Name() string {
	return "onpage"
}

func (a *OnPage) Analyze(_ context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult {
	l := NewLedger(a.Name())

	h1Count := len(page.H(1))
	if h1Count == 0 {
		l.Record("onpage-no-h1", models.SeverityCritical, "Missing H1 tag",
			"No H1 heading found on the page.",
			"Add a single, descriptive H1 tag.",
			"Primary on-page ranking signal", 15)
	} else if h1Count > 1 {
		l.Record("onpage-multiple-h1", models.SeverityMedium, "Multiple H1 tags",
			fmt.Sprintf("Found %d H1 tags. Use only one per page.", h1Count),
			"Keep one H1 and convert others to H2.",
			"Dilutes heading hierarchy", 6)
	}

	hasH2 := len(page.H(2)) > 0
	hasH3 := len(page.H(3)) > 0
	hasH4 := len(page.H(4)) > 0
	if hasH3 && !hasH2 {
		l.Record("onpage-skip-h2", models.SeverityMedium, "H3 used without H2",
			"H3 headings found but no H2. Heading hierarchy is broken.",
			"Add H2 headings before H3.", "Poor document structure", 5)
	}
	if hasH4 && !hasH3 {
		l.Record("onpage-skip-h3", models.SeverityLow, "H4 used without H3",
			"Heading levels skipped.", "Maintain proper heading hierarchy.",
			"Minor structure issue", 3)
	}

	internal := page.InternalLinks
	if len(internal) == 0 {
		l.Record("onpage-no-internal-links", models.SeverityHigh, "No internal links",
			"Page has zero internal links.",
			"Add 3-5 internal links to related pages.",
			"Poor crawlability and link equity distribution", 10)
	} else if len(internal) < 3 {
		l.Record("onpage-few-internal-links", models.SeverityMedium, "Few internal links",
			fmt.Sprintf("Only %d internal links (recommended: 3-5).", len(internal)),
			"Add more contextual internal links.",
			"Suboptimal link equity", 5)
	}

	path := ""
	if u, err := url.Parse(fetch.FinalURL); err == nil {
		path = u.Path
	}

	if len(path) > 100 {
		l.Record("onpage-long-url", models.SeverityLow, "URL path too long",
			fmt.Sprintf("Path is %d characters.", len(path)),
			"Use shorter, descriptive URLs.", "Hard to share", 3)
	}
	if path != strings.ToLower(path) {
		l.Record("onpage-uppercase-url", models.SeverityLow, "URL contains uppercase letters",
			"URLs should be lowercase to avoid duplicate content.",
			"Use lowercase URLs.", "Duplicate content risk", 2)
	}
	if strings.Contains(path, "_") {
		l.Record("onpage-underscore-url", models.SeverityLow, "URL uses underscores",
			"Google treats underscores as word joiners, not separators.",
			"Use hyphens (-) instead of underscores (_).",
			"Minor SEO impact", 2)
	}

	var missingOG []string
	for _, tag := range []string{"og:title", "og:description", "og:image"} {
		if _, ok := page.OpenGraph[tag]; !ok {
			missingOG = append(missingOG, tag)
		}
	}
	if len(missingOG) > 0 {
		l.Record("onpage-missing-og", models.SeverityMedium, "Incomplete Open Graph tags",
			fmt.Sprintf("Missing: %s.", strings.Join(missingOG, ", ")),
			"Add all Open Graph tags for proper social sharing.",
			"Poor social sharing appearance", 5)
	}

	if _, ok := page.TwitterCard["twitter:card"]; !ok {
		l.Record("onpage-no-twitter-card", models.SeverityLow, "Missing Twitter Card",
			"No twitter:card meta tag found.",
			"Add <meta name='twitter:card' content='summary_large_image'>.",
			"Poor X/Twitter sharing", 3)
	}

	if page.Language == "" {
		l.Record("onpage-no-lang", models.SeverityMedium, "Missing language attribute",
			"No lang attribute on <html> tag.",
			"Add lang='en' (or appropriate language) to the <html> tag.",
			"Helps search engines determine content language", 4)
	}

	return models.CategoryResult{
		Name:    a.Name(),
		Label:   "On-Page SEO",
		Score:   l.Score(),
		Weight:  0.15,
		Issues:  l.Issues(),
		Summary: fmt.Sprintf("On-page score: %d/100.", l.Score()),
	}
}
