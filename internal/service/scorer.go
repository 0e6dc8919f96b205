package service

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"seo_audit_engine/internal/domain/models"
)

const topFixesLimit = 10

// BuildResults reduces the category results to the final audit output: the
// weighted overall score and the globally ranked top-fixes list.
func BuildResults(categories []models.CategoryResult, pageURL string, title string, metaDescription string, durationMs int64) *models.AuditResult {
	// Weighted mean over the actual weight total, so any positive weight
	// configuration normalizes correctly. Zero total weight scores zero.
	totalWeight := 0.0
	weightedSum := 0.0
	weightByCategory := make(map[string]float64, len(categories))
	for _, c := range categories {
		totalWeight += c.Weight
		weightedSum += float64(c.Score) * c.Weight
		weightByCategory[c.Name] = c.Weight
	}
	overall := 0
	if totalWeight > 0 {
		overall = int(math.Round(weightedSum / totalWeight))
	}

	var allIssues []models.Issue
	for _, c := range categories {
		allIssues = append(allIssues, c.Issues...)
	}

	// Two-key ranking: severity first, then the originating category's
	// weight, descending. The stable sort keeps detection order for ties.
	sort.SliceStable(allIssues, func(i, j int) bool {
		ri, rj := allIssues[i].Severity.Rank(), allIssues[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return weightByCategory[allIssues[i].Category] > weightByCategory[allIssues[j].Category]
	})

	topFixes := allIssues
	if len(topFixes) > topFixesLimit {
		topFixes = topFixes[:topFixesLimit]
	}
	if topFixes == nil {
		topFixes = []models.Issue{}
	}

	return &models.AuditResult{
		OverallScore:    overall,
		Categories:      categories,
		TopFixes:        topFixes,
		URL:             pageURL,
		Domain:          displayDomain(pageURL),
		FetchedAt:       time.Now().UTC().Format(time.RFC3339),
		AuditDuration:   durationMs,
		PageTitle:       title,
		MetaDescription: metaDescription,
	}
}

// displayDomain strips a leading www. label from the URL's host.
func displayDomain(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
