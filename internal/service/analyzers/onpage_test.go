package analyzers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"seo_audit_engine/internal/domain/models"
)

// onPagePage describes a page that trips no on-page check.
func onPagePage() *models.ParsedPage {
	return &models.ParsedPage{
		Language: "en",
		Headings: [6][]string{
			{"Main heading"},
			{"Section one", "Section two"},
		},
		InternalLinks: []models.Link{
			{Href: "https://example.com/a"},
			{Href: "https://example.com/b"},
			{Href: "https://example.com/c"},
		},
		OpenGraph: map[string]string{
			"og:title":       "T",
			"og:description": "D",
			"og:image":       "https://example.com/img.png",
		},
		TwitterCard: map[string]string{"twitter:card": "summary"},
	}
}

func onPageFetch(finalURL string) *models.FetchResult {
	return &models.FetchResult{FinalURL: finalURL}
}

func TestOnPage_HealthyPageScoresFull(t *testing.T) {
	result := NewOnPage().Analyze(context.Background(), onPagePage(), onPageFetch("https://example.com/blog/post"))

	assert.Equal(t, "onpage", result.Name)
	assert.Equal(t, 0.15, result.Weight)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Issues)
}

func TestOnPage_HeadingChecks(t *testing.T) {
	cases := []struct {
		name     string
		headings [6][]string
		wantIDs  []string
	}{
		{
			name:     "missing h1",
			headings: [6][]string{1: {"Section"}},
			wantIDs:  []string{"onpage-no-h1"},
		},
		{
			name:     "multiple h1",
			headings: [6][]string{{"One", "Two"}, {"Section"}},
			wantIDs:  []string{"onpage-multiple-h1"},
		},
		{
			name:     "h3 without h2",
			headings: [6][]string{{"Main"}, nil, {"Sub"}},
			wantIDs:  []string{"onpage-skip-h2"},
		},
		{
			name:     "h4 without h3",
			headings: [6][]string{{"Main"}, {"Section"}, nil, {"Deep"}},
			wantIDs:  []string{"onpage-skip-h3"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := onPagePage()
			page.Headings = tc.headings

			result := NewOnPage().Analyze(context.Background(), page, onPageFetch("https://example.com/"))

			assert.Equal(t, tc.wantIDs, issueIDs(result.Issues))
		})
	}
}

func TestOnPage_InternalLinkChecks(t *testing.T) {
	t.Run("no internal links", func(t *testing.T) {
		page := onPagePage()
		page.InternalLinks = nil

		result := NewOnPage().Analyze(context.Background(), page, onPageFetch("https://example.com/"))

		issue := findIssue(t, result.Issues, "onpage-no-internal-links")
		assert.Equal(t, models.SeverityHigh, issue.Severity)
		assert.Equal(t, 90, result.Score)
	})

	t.Run("few internal links", func(t *testing.T) {
		page := onPagePage()
		page.InternalLinks = page.InternalLinks[:2]

		result := NewOnPage().Analyze(context.Background(), page, onPageFetch("https://example.com/"))

		assert.Equal(t, []string{"onpage-few-internal-links"}, issueIDs(result.Issues))
		assert.Equal(t, 95, result.Score)
	})
}

func TestOnPage_URLShapeChecks(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantIDs []string
	}{
		{
			name:    "long path",
			url:     "https://example.com/" + strings.Repeat("a", 101),
			wantIDs: []string{"onpage-long-url"},
		},
		{
			name:    "uppercase path",
			url:     "https://example.com/Blog/Post",
			wantIDs: []string{"onpage-uppercase-url"},
		},
		{
			name:    "underscores in path",
			url:     "https://example.com/blog_post",
			wantIDs: []string{"onpage-underscore-url"},
		},
		{
			name:    "uppercase host does not count",
			url:     "https://EXAMPLE.com/blog",
			wantIDs: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewOnPage().Analyze(context.Background(), onPagePage(), onPageFetch(tc.url))
			assert.Equal(t, tc.wantIDs, issueIDs(result.Issues))
		})
	}
}

func TestOnPage_SocialMarkupChecks(t *testing.T) {
	page := onPagePage()
	delete(page.OpenGraph, "og:image")
	delete(page.OpenGraph, "og:description")
	page.TwitterCard = nil

	result := NewOnPage().Analyze(context.Background(), page, onPageFetch("https://example.com/"))

	issue := findIssue(t, result.Issues, "onpage-missing-og")
	assert.Contains(t, issue.Description, "og:description")
	assert.Contains(t, issue.Description, "og:image")
	assert.NotContains(t, issue.Description, "og:title,")
	assert.Contains(t, issueIDs(result.Issues), "onpage-no-twitter-card")
	assert.Equal(t, 92, result.Score)
}

func TestOnPage_MissingLanguage(t *testing.T) {
	page := onPagePage()
	page.Language = ""

	result := NewOnPage().Analyze(context.Background(), page, onPageFetch("https://example.com/"))

	assert.Equal(t, []string{"onpage-no-lang"}, issueIDs(result.Issues))
	assert.Equal(t, 96, result.Score)
}
