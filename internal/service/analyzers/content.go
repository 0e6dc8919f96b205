package analyzers

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
)

// Content checks content depth and readability, and asks the insight
// provider for an E-E-A-T assessment. Without a provider the deterministic
// checks alone decide the score.
type Content struct {
	provider adaptors.InsightProvider
	log      *log.Logger
}

// NewContent builds the analyzer. provider may be nil; the E-E-A-T check is
// then skipped entirely.
func NewContent(provider adaptors.InsightProvider, logger *log.Logger) *Content {
	return &Content{
		provider: provider,
		log:      logger,
	}
}

func (a *Content) Name() string {
	return "content"
}

func (a *Content) Analyze(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult {
	l := NewLedger(a.Name())
	wordCount := page.WordCount

	if wordCount < 200 {
		l.Record("content-thin", models.SeverityCritical, "Thin content",
			fmt.Sprintf("Only %d words. Google considers this thin content.", wordCount),
			"Add substantial, valuable content (500+ words recommended).",
			"Major ranking penalty", 20)
	} else if wordCount < 500 {
		l.Record("content-short", models.SeverityHigh, "Short content",
			fmt.Sprintf("Page has %d words (recommended: 500+).", wordCount),
			"Expand content with valuable information.",
			"Reduced ranking potential", 12)
	}

	if page.BodyText != "" {
		readability := fleschReadingEase(page.BodyText)
		if readability < 30 {
			l.Record("content-hard-read", models.SeverityMedium, "Very difficult to read",
				fmt.Sprintf("Flesch score: %.0f/100. Content is hard to understand.", readability),
				"Simplify language. Target 60-70 for general audiences.",
				"Poor user engagement", 8)
		} else if readability < 50 {
			l.Record("content-readability", models.SeverityLow, "Readability could improve",
				fmt.Sprintf("Flesch score: %.0f/100.", readability),
				"Use shorter sentences and simpler words.",
				"User engagement", 4)
		}
	}

	if len(page.H(2)) == 0 && wordCount > 300 {
		l.Record("content-no-h2", models.SeverityMedium, "No H2 headings",
			"Long content without subheadings.",
			"Break content into sections with H2 headings.",
			"Poor readability and SEO structure", 6)
	}

	hasDate := false
	for _, schema := range page.Schemas {
		if schema["datePublished"] != nil || schema["dateModified"] != nil {
			hasDate = true
			break
		}
	}
	if !hasDate && wordCount > 500 {
		l.Record("content-no-date", models.SeverityLow, "No publication date signals",
			"No datePublished or dateModified found.",
			"Add date metadata via schema markup.",
			"Content freshness signals missing", 3)
	}

	var eeat *models.EEATInsight
	if len(page.BodyText) > 100 {
		eeat = a.assessEEAT(ctx, page, fetch)
	}

	if eeat != nil {
		if eeat.OverallScore < 40 {
			l.Record("content-weak-eeat", models.SeverityHigh, "Weak E-E-A-T signals",
				fmt.Sprintf("E-E-A-T score: %d/100. %s", eeat.OverallScore, eeat.Summary),
				"Add author credentials, first-hand experience, citations, and trust signals.",
				"Major ranking factor since Dec 2025", 15)
		} else if eeat.OverallScore < 60 {
			l.Record("content-moderate-eeat", models.SeverityMedium, "Moderate E-E-A-T signals",
				fmt.Sprintf("E-E-A-T score: %d/100. %s", eeat.OverallScore, eeat.Summary),
				"Strengthen expertise signals: add author bio, credentials, case studies.",
				"Competitive ranking disadvantage", 8)
		}

		switch eeat.AIContentRisk {
		case "high":
			l.Record("content-ai-risk-high", models.SeverityHigh, "High AI-generated content risk",
				"Content shows strong AI-generation patterns.",
				"Add personal anecdotes, specific data, and first-hand experience.",
				"Google's helpful content system penalizes generic AI content", 12)
		case "medium":
			l.Record("content-ai-risk-medium", models.SeverityMedium, "Moderate AI content risk",
				"Some AI-generation patterns detected.",
				"Add more specificity and personal expertise signals.",
				"Potential ranking impact", 6)
		}
	}

	return models.CategoryResult{
		Name:    a.Name(),
		Label:   "Content Quality",
		Score:   l.Score(),
		Weight:  0.20,
		Issues:  l.Issues(),
		Summary: fmt.Sprintf("Content quality score: %d/100. Word count: %d.", l.Score(), wordCount),
		EEAT:    eeat,
	}
}

// assessEEAT asks the provider for the qualitative assessment. Every failure
// mode degrades to nil: the check is skipped, never failed.
func (a *Content) assessEEAT(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult) *models.EEATInsight {
	if a.provider == nil {
		return nil
	}

	raw, err := a.provider.Infer(ctx, adaptors.InsightEEAT, page.BodyText, fetch.FinalURL, page.Title)
	if err != nil {
		a.log.WithError(err).Debug(`eeat assessment skipped`)
		return nil
	}

	// Pre-seed the defaults used when the model omits a field.
	insight := models.EEATInsight{
		OverallScore:  50,
		AIContentRisk: "low",
	}
	if err := json.Unmarshal(raw, &insight); err != nil {
		a.log.WithError(err).Debug(`eeat response malformed, skipped`)
		return nil
	}
	return &insight
}
