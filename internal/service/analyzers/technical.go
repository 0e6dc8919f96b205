package analyzers

import (
	"context"
	"fmt"
	"strings"

	"seo_audit_engine/internal/domain/models"
)

// securityHeader is one entry of the security-header roster, with the points
// deducted and severity reported when the header is absent.
type securityHeader struct {
	name     string
	points   int
	severity models.Severity
}

var securityHeaders = []securityHeader{
	{"content-security-policy", 2, models.SeverityLow},
	{"strict-transport-security", 3, models.SeverityMedium},
	{"x-frame-options", 2, models.SeverityLow},
	{"x-content-type-options", 2, models.SeverityLow},
	{"referrer-policy", 2, models.SeverityLow},
}

// aiCrawlerOrgs maps the crawlers reported by the informational
// crawler-access check to their operating organisations.
var aiCrawlerOrgs = []struct {
	crawler string
	org     string
}{
	{"GPTBot", "OpenAI"},
	{"ClaudeBot", "Anthropic"},
	{"PerplexityBot", "Perplexity"},
	{"Google-Extended", "Google AI"},
}

// Technical checks crawlability and markup hygiene: title and meta
// description length bands, canonical, robots directives, HTTPS, security
// headers, root resources and redirect chains.
type Technical struct{}

func NewTechnical() *Technical {
	return &Technical{}
}

func (a *Technical) Name() string {
	return "technical"
}

func (a *Technical) Analyze(_ context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult {
	l := NewLedger(a.Name())

	title := page.Title
	if title == "" {
		l.Record("tech-no-title", models.SeverityCritical, "Missing title tag",
			"No <title> tag found.", "Add a descriptive title tag (30-60 chars).",
			"Major ranking factor", 15)
	} else if len(title) < 30 {
		l.Record("tech-short-title", models.SeverityHigh, "Title tag too short",
			fmt.Sprintf("Title is %d chars (min 30).", len(title)),
			"Expand title to 30-60 characters.", "Reduced CTR", 8)
	} else if len(title) > 60 {
		l.Record("tech-long-title", models.SeverityMedium, "Title tag too long",
			fmt.Sprintf("Title is %d chars (max 60). Google will truncate.", len(title)),
			"Shorten to under 60 characters.", "Truncated in SERPs", 5)
	}

	desc := page.MetaDescription
	if desc == "" {
		l.Record("tech-no-meta-desc", models.SeverityHigh, "Missing meta description",
			"No meta description found.",
			"Add a compelling meta description (120-160 chars).",
			"Lower CTR from search results", 10)
	} else if len(desc) < 120 {
		l.Record("tech-short-meta-desc", models.SeverityMedium, "Meta description too short",
			fmt.Sprintf("Meta description is %d chars (min 120).", len(desc)),
			"Expand to 120-160 characters.", "Missed CTR opportunity", 5)
	} else if len(desc) > 160 {
		l.Record("tech-long-meta-desc", models.SeverityLow, "Meta description too long",
			fmt.Sprintf("Meta description is %d chars (max 160).", len(desc)),
			"Shorten to under 160 characters.", "Truncated in SERPs", 3)
	}

	if page.Canonical == "" {
		l.Record("tech-no-canonical", models.SeverityHigh, "Missing canonical tag",
			"No canonical URL specified.",
			"Add <link rel='canonical'> to prevent duplicate content.",
			"Duplicate content risk", 8)
	}

	if strings.Contains(strings.ToLower(page.MetaRobots), "noindex") {
		l.Record("tech-noindex", models.SeverityCritical, "Page blocked from indexing",
			"Meta robots contains 'noindex'.",
			"Remove noindex if this page should appear in search.",
			"Page invisible to search engines", 20)
	}

	if page.Viewport == "" {
		l.Record("tech-no-viewport", models.SeverityHigh, "Missing viewport meta tag",
			"No viewport meta tag found.",
			"Add <meta name='viewport' content='width=device-width, initial-scale=1'>.",
			"Mobile usability issues", 10)
	}

	if strings.HasPrefix(fetch.FinalURL, "http://") {
		l.Record("tech-no-https", models.SeverityCritical, "Not using HTTPS",
			"Site is served over HTTP.",
			"Migrate to HTTPS. It's a confirmed ranking signal.",
			"Security + ranking penalty", 15)
	}

	headers := lowerKeys(fetch.Headers)
	for _, h := range securityHeaders {
		if _, ok := headers[h.name]; !ok {
			l.Record("tech-no-"+h.name, h.severity,
				fmt.Sprintf("Missing %s header", h.name),
				fmt.Sprintf("The %s security header is not set.", h.name),
				fmt.Sprintf("Add %s header for better security.", h.name),
				"Security vulnerability", h.points)
		}
	}

	if fetch.RobotsTxt == "" {
		l.Record("tech-no-robots", models.SeverityMedium, "Missing robots.txt",
			"No robots.txt file found.",
			"Create a robots.txt to guide crawlers.",
			"No crawl guidance", 5)
	}

	if fetch.SitemapXML == "" {
		l.Record("tech-no-sitemap", models.SeverityMedium, "Missing XML sitemap",
			"No sitemap.xml found at the root.",
			"Create and submit an XML sitemap.",
			"Slower page discovery", 5)
	}

	if len(fetch.RedirectChain) > 1 {
		l.Record("tech-redirect-chain", models.SeverityMedium, "Redirect chain detected",
			fmt.Sprintf("%d redirects before reaching the page.", len(fetch.RedirectChain)),
			"Reduce to a single redirect.",
			"Crawl budget waste", 5)
	}

	// Informational only, no deduction.
	var blocked []string
	for _, c := range aiCrawlerOrgs {
		if strings.Contains(fetch.RobotsTxt, "User-agent: "+c.crawler) &&
			strings.Contains(fetch.RobotsTxt, "Disallow: /") {
			blocked = append(blocked, fmt.Sprintf("%s (%s)", c.crawler, c.org))
		}
	}
	if len(blocked) > 0 {
		l.Record("tech-ai-crawlers-blocked", models.SeverityLow,
			"AI crawlers blocked in robots.txt",
			"Blocked: "+strings.Join(blocked, ", "),
			"Consider allowing AI crawlers for visibility in AI search.",
			"Reduced AI search visibility", 0)
	}

	return models.CategoryResult{
		Name:    a.Name(),
		Label:   "Technical SEO",
		Score:   l.Score(),
		Weight:  0.20,
		Issues:  l.Issues(),
		Summary: fmt.Sprintf("Technical SEO score: %d/100 with %d issues found.", l.Score(), len(l.Issues())),
	}
}

func lowerKeys(headers map[string]string) map[string]string {
	lowered := make(map[string]string, len(headers))
	for k, v := range headers {
		lowered[strings.ToLower(k)] = v
	}
	return lowered
}
