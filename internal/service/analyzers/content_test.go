package analyzers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
)

// stubProvider returns a canned payload or error for every Infer call.
type stubProvider struct {
	raw json.RawMessage
	err error

	calls int
}

func (s *stubProvider) Infer(_ context.Context, _ adaptors.InsightVariant, _ string, _ string, _ string) (json.RawMessage, error) {
	s.calls++
	return s.raw, s.err
}

func contentPage(wordCount int) *models.ParsedPage {
	return &models.ParsedPage{
		WordCount: wordCount,
		BodyText:  strings.TrimSpace(strings.Repeat("The cat sat on the mat. ", 20)),
		Headings:  [6][]string{{"Main"}, {"Section"}},
		Schemas: []models.SchemaBlock{
			{"@type": "Article", "datePublished": "2024-01-01"},
		},
	}
}

func TestContent_HealthyPageScoresFull(t *testing.T) {
	result := NewContent(nil, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{})

	assert.Equal(t, "content", result.Name)
	assert.Equal(t, 0.20, result.Weight)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Issues)
	assert.Nil(t, result.EEAT)
}

func TestContent_WordCountChecks(t *testing.T) {
	cases := []struct {
		name      string
		words     int
		wantID    string
		wantScore int
	}{
		{"thin content", 150, "content-thin", 80},
		{"short content", 400, "content-short", 88},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := contentPage(tc.words)

			result := NewContent(nil, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

			assert.Equal(t, []string{tc.wantID}, issueIDs(result.Issues))
			assert.Equal(t, tc.wantScore, result.Score)
		})
	}
}

func TestContent_HardToReadBody(t *testing.T) {
	page := contentPage(800)
	page.BodyText = strings.TrimSpace(strings.Repeat("Multidimensional organizational heterogeneity necessitates comprehensive institutional restructuring ", 10))

	result := NewContent(nil, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

	issue := findIssue(t, result.Issues, "content-hard-read")
	assert.Equal(t, models.SeverityMedium, issue.Severity)
	assert.Equal(t, 92, result.Score)
}

func TestContent_EmptyBodySkipsReadability(t *testing.T) {
	page := contentPage(800)
	page.BodyText = ""

	result := NewContent(nil, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

	assert.NotContains(t, issueIDs(result.Issues), "content-hard-read")
	assert.NotContains(t, issueIDs(result.Issues), "content-readability")
}

func TestContent_NoH2OnLongContent(t *testing.T) {
	page := contentPage(800)
	page.Headings = [6][]string{{"Main"}}

	result := NewContent(nil, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

	assert.Equal(t, []string{"content-no-h2"}, issueIDs(result.Issues))
}

func TestContent_NoDateSignalsOnLongContent(t *testing.T) {
	page := contentPage(800)
	page.Schemas = nil

	result := NewContent(nil, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

	assert.Equal(t, []string{"content-no-date"}, issueIDs(result.Issues))

	// Short pages are exempt.
	short := contentPage(400)
	short.Schemas = nil
	result = NewContent(nil, log.New()).Analyze(context.Background(), short, &models.FetchResult{})
	assert.NotContains(t, issueIDs(result.Issues), "content-no-date")
}

func TestContent_EEATAssessment(t *testing.T) {
	t.Run("weak signals recorded", func(t *testing.T) {
		provider := &stubProvider{raw: json.RawMessage(`{"overallScore": 30, "summary": "Thin authority.", "aiContentRisk": "low"}`)}

		result := NewContent(provider, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{FinalURL: "https://example.com"})

		issue := findIssue(t, result.Issues, "content-weak-eeat")
		assert.Contains(t, issue.Description, "30/100")
		assert.Equal(t, 85, result.Score)
		assert.NotNil(t, result.EEAT)
		assert.Equal(t, 30, result.EEAT.OverallScore)
	})

	t.Run("moderate signals and ai risk stack", func(t *testing.T) {
		provider := &stubProvider{raw: json.RawMessage(`{"overallScore": 55, "aiContentRisk": "high"}`)}

		result := NewContent(provider, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{})

		ids := issueIDs(result.Issues)
		assert.Contains(t, ids, "content-moderate-eeat")
		assert.Contains(t, ids, "content-ai-risk-high")
		assert.Equal(t, 80, result.Score)
	})

	t.Run("omitted fields default to neutral", func(t *testing.T) {
		provider := &stubProvider{raw: json.RawMessage(`{"summary": "ok"}`)}

		result := NewContent(provider, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{})

		assert.Empty(t, result.Issues)
		assert.Equal(t, 50, result.EEAT.OverallScore)
		assert.Equal(t, "low", result.EEAT.AIContentRisk)
	})

	t.Run("provider failure skips the check", func(t *testing.T) {
		provider := &stubProvider{err: assert.AnError}

		result := NewContent(provider, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{})

		assert.Empty(t, result.Issues)
		assert.Nil(t, result.EEAT)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("malformed payload skips the check", func(t *testing.T) {
		provider := &stubProvider{raw: json.RawMessage(`{"overallScore": "not a number"}`)}

		result := NewContent(provider, log.New()).Analyze(context.Background(), contentPage(800), &models.FetchResult{})

		assert.Nil(t, result.EEAT)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("short body never calls the provider", func(t *testing.T) {
		provider := &stubProvider{raw: json.RawMessage(`{}`)}
		page := contentPage(800)
		page.BodyText = "short body"

		NewContent(provider, log.New()).Analyze(context.Background(), page, &models.FetchResult{})

		assert.Zero(t, provider.calls)
	})
}
