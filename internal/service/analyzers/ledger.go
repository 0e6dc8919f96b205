package analyzers

import "seo_audit_engine/internal/domain/models"

const startingScore = 100

// Ledger accumulates the issues and score deductions of a single analyzer
// run. The running score starts at 100 and is clamped at zero after every
// deduction, so it can never go negative mid-run. A fresh ledger is created
// per analyzer invocation; it carries no state across runs.
type Ledger struct {
	category string
	score    int
	issues   []models.Issue
}

func NewLedger(category string) *Ledger {
	return &Ledger{
		category: category,
		score:    startingScore,
		issues:   []models.Issue{},
	}
}

// Record appends an issue and deducts points from the running score. Callers
// are expected to use IDs that are unique within one run for downstream
// deduplication; the ledger does not enforce this. Zero points records an
// informational issue without touching the score.
func (l *Ledger) Record(id string, severity models.Severity, title, description, recommendation, impact string, points int) {
	l.Deduct(points)
	l.issues = append(l.issues, models.Issue{
		ID:             id,
		Category:       l.category,
		Severity:       severity,
		Title:          title,
		Description:    description,
		Recommendation: recommendation,
		Impact:         impact,
	})
}

// Deduct lowers the running score without recording an issue.
func (l *Ledger) Deduct(points int) {
	l.score -= points
	if l.score < 0 {
		l.score = 0
	}
}

// Score returns the clamped running score.
func (l *Ledger) Score() int {
	return l.score
}

// Issues returns the recorded issues in detection order.
func (l *Ledger) Issues() []models.Issue {
	return l.issues
}
