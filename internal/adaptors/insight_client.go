package adaptors

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"

	domain "seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/pkg/errors"
)

const insightMaxTokens = 1024

// wordCaps bounds the text submitted per prompt variant.
var wordCaps = map[domain.InsightVariant]int{
	domain.InsightEEAT:            3000,
	domain.InsightQuerySimulation: 2000,
}

const eeatPromptTemplate = `Analyze this webpage content for E-E-A-T (Experience, Expertise, Authoritativeness, Trustworthiness) quality signals. Return ONLY valid JSON.

URL: %s
Title: %s
Content (truncated): %s

Return this exact JSON structure:
{
  "experience": { "score": 0-100, "signals": ["signal1", "signal2"] },
  "expertise": { "score": 0-100, "signals": ["signal1", "signal2"] },
  "authoritativeness": { "score": 0-100, "signals": ["signal1", "signal2"] },
  "trustworthiness": { "score": 0-100, "signals": ["signal1", "signal2"] },
  "overallScore": 0-100,
  "summary": "Brief E-E-A-T assessment",
  "aiContentRisk": "low|medium|high"
}

Score each dimension 0-100. Identify specific signals.
Assess AI content risk based on generic phrasing, lack of specificity,
and absence of first-hand experience markers.

Weights: Experience 20%%, Expertise 25%%, Authoritativeness 25%%, Trustworthiness 30%%.`

const querySimulationPromptTemplate = `Analyze this webpage and simulate how AI search engines would use it.

URL: %s
Title: %s
Content (truncated): %s

Return ONLY valid JSON:
{
  "simulatedQueries": [
    {"query": "example question a user might ask", "citationLikelihood": "high|medium|low", "reason": "brief reason"},
    {"query": "...", "citationLikelihood": "...", "reason": "..."},
    {"query": "...", "citationLikelihood": "...", "reason": "..."}
  ],
  "topChange": "The single most impactful change to improve AI citation likelihood",
  "aiVisibilityRating": "high|medium|low"
}

Generate 3 realistic queries users might ask where this page could be cited. Rate citation likelihood based on content quality, structure, and authority signals.`

// InsightClient answers qualitative prompts with the Anthropic API. Any
// transport failure or non-JSON answer surfaces as an error so callers treat
// the provider as unavailable and skip the check.
type InsightClient struct {
	client anthropic.Client
	log    *log.Logger
}

func NewInsightClient(apiKey string, logger *log.Logger) *InsightClient {
	return &InsightClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		log:    logger,
	}
}

func (c *InsightClient) Infer(ctx context.Context, variant domain.InsightVariant, bodyText string, url string, title string) (json.RawMessage, error) {
	truncated := capWords(bodyText, wordCaps[variant])
	if title == "" {
		title = "N/A"
	}

	var prompt string
	switch variant {
	case domain.InsightEEAT:
		prompt = fmt.Sprintf(eeatPromptTemplate, url, title, truncated)
	case domain.InsightQuerySimulation:
		prompt = fmt.Sprintf(querySimulationPromptTemplate, url, title, truncated)
	default:
		return nil, errors.Errorf(`unknown insight variant: %s`, variant)
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_5HaikuLatest,
		MaxTokens: insightMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, `insight request failed`)
	}

	var text strings.Builder
	for _, block := range message.Content {
		text.WriteString(block.Text)
	}

	raw := stripCodeFence(strings.TrimSpace(text.String()))
	if !json.Valid([]byte(raw)) {
		return nil, errors.New(`insight response is not valid json`)
	}
	return json.RawMessage(raw), nil
}

// stripCodeFence unwraps a fenced model answer down to its JSON payload.
func stripCodeFence(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

func capWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}
