package adaptors

import (
	"context"
	"encoding/json"
)

// InsightVariant selects the prompt an analyzer wants answered.
type InsightVariant string

const (
	// InsightEEAT asks for an E-E-A-T content quality assessment.
	InsightEEAT InsightVariant = "eeat"
	// InsightQuerySimulation asks for simulated AI search queries.
	InsightQuerySimulation InsightVariant = "query_simulation"
)

// InsightProvider is the narrow capability the two AI-backed analyzers use.
// Implementations must cap the submitted text themselves and must return an
// error for any malformed or non-JSON model output, so callers can treat
// every failure mode as "provider unavailable" and skip the check.
type InsightProvider interface {
	Infer(ctx context.Context, variant InsightVariant, bodyText string, url string, title string) (json.RawMessage, error)
}
