package models

// Severity ranks an issue from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns the sort rank of a severity. Lower sorts first.
// Unknown severities rank with low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 3
	}
}

// Issue is a single detected deficiency. Score deductions are tracked in the
// ledger, never on the issue itself.
type Issue struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Impact         string   `json:"impact"`
}

// CategoryResult is the output of one analyzer run.
type CategoryResult struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Score   int     `json:"score"`
	Weight  float64 `json:"weight"`
	Issues  []Issue `json:"issues"`
	Summary string  `json:"summary"`

	// Category-specific enrichment.
	EEAT            *EEATInsight          `json:"eeat,omitempty"`
	AISearchDetails *AISearchDetails      `json:"geoDetails,omitempty"`
	Competitor      *CompetitorComparison `json:"competitorComparison,omitempty"`
}

// AuditResult is the final aggregated audit output.
type AuditResult struct {
	OverallScore    int              `json:"overallScore"`
	Categories      []CategoryResult `json:"categories"`
	TopFixes        []Issue          `json:"topFixes"`
	URL             string           `json:"url"`
	Domain          string           `json:"domain"`
	FetchedAt       string           `json:"fetchedAt"`
	AuditDuration   int64            `json:"auditDuration"`
	PageTitle       string           `json:"pageTitle,omitempty"`
	MetaDescription string           `json:"metaDescription,omitempty"`
	Error           string           `json:"error,omitempty"`
}
