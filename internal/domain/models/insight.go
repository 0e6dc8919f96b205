package models

// EEATDimension is one scored E-E-A-T dimension returned by the insight
// provider.
type EEATDimension struct {
	Score   int      `json:"score"`
	Signals []string `json:"signals"`
}

// EEATInsight is the provider's qualitative content assessment.
type EEATInsight struct {
	Experience        EEATDimension `json:"experience"`
	Expertise         EEATDimension `json:"expertise"`
	Authoritativeness EEATDimension `json:"authoritativeness"`
	Trustworthiness   EEATDimension `json:"trustworthiness"`
	OverallScore      int           `json:"overallScore"`
	Summary           string        `json:"summary"`
	AIContentRisk     string        `json:"aiContentRisk"`
}

// SimulatedQuery is one example query with the provider's citation estimate.
type SimulatedQuery struct {
	Query              string `json:"query"`
	CitationLikelihood string `json:"citationLikelihood"`
	Reason             string `json:"reason"`
}

// AISimulation is the provider's simulated AI search behaviour for the page.
// Enrichment only, it never changes a score.
type AISimulation struct {
	SimulatedQueries   []SimulatedQuery `json:"simulatedQueries"`
	TopChange          string           `json:"topChange"`
	AIVisibilityRating string           `json:"aiVisibilityRating"`
}

// AISearchDetails carries the ai-search category's sub-scores and crawler
// access map.
type AISearchDetails struct {
	SubScores           map[string]int    `json:"subScores"`
	AICrawlerStatus     map[string]string `json:"aiCrawlerStatus"`
	LlmsTxtStatus       string            `json:"llmsTxtStatus"`
	CitablePassageCount int               `json:"citablePassageCount"`
	AISimulation        *AISimulation     `json:"aiSimulation,omitempty"`
}

// CompetitorComparison is the per-dimension diff against a second document.
type CompetitorComparison struct {
	CompetitorURL        string         `json:"competitorUrl"`
	YourScore            int            `json:"yourScore"`
	CompetitorScore      int            `json:"competitorScore"`
	YourSubScores        map[string]int `json:"yourSubScores"`
	CompetitorSubScores  map[string]int `json:"competitorSubScores"`
	Advantages           []string       `json:"advantages"`
	Gaps                 []string       `json:"gaps"`
	CompetitorIssueCount int            `json:"competitorIssueCount"`
}
