package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seo_audit_engine/internal/domain/models"
)

func TestLedger_Record(t *testing.T) {
	l := NewLedger("technical")

	l.Record("a", models.SeverityHigh, "Title A", "desc", "rec", "impact", 10)
	l.Record("b", models.SeverityLow, "Title B", "desc", "rec", "impact", 3)

	assert.Equal(t, 87, l.Score())
	assert.Len(t, l.Issues(), 2)
	assert.Equal(t, "a", l.Issues()[0].ID)
	assert.Equal(t, "technical", l.Issues()[0].Category)
	assert.Equal(t, models.SeverityLow, l.Issues()[1].Severity)
}

func TestLedger_ScoreClampedAtZero(t *testing.T) {
	l := NewLedger("content")

	l.Deduct(60)
	l.Deduct(60)
	assert.Equal(t, 0, l.Score())

	// Once at zero further deductions are a no-op.
	l.Record("x", models.SeverityCritical, "X", "", "", "", 25)
	assert.Equal(t, 0, l.Score())
	assert.Len(t, l.Issues(), 1)
}

func TestLedger_ZeroPointIssueIsInformational(t *testing.T) {
	l := NewLedger("technical")

	l.Record("info", models.SeverityLow, "Informational", "", "", "", 0)

	assert.Equal(t, 100, l.Score())
	assert.Len(t, l.Issues(), 1)
}

func TestLedger_IssuesStartEmptyNotNil(t *testing.T) {
	l := NewLedger("images")
	assert.NotNil(t, l.Issues())
	assert.Empty(t, l.Issues())
}
