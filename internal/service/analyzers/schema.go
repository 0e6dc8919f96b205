package analyzers

import (
	"context"
	"fmt"
	"strings"

	"seo_audit_engine/internal/domain/models"
)

// deprecatedTypes maps schema.org types Google no longer supports to the
// date support was dropped.
var deprecatedTypes = map[string]string{
	"HowTo":               "September 2023",
	"SpecialAnnouncement": "July 2025",
	"CourseInfo":          "June 2025",
	"EstimatedSalary":     "June 2025",
	"LearningVideo":       "June 2025",
	"ClaimReview":         "June 2025",
	"VehicleListing":      "June 2025",
	"Dataset":             "Late 2025",
}

var restrictedTypes = map[string]string{
	"FAQPage": "Government and healthcare authority sites only (Aug 2023)",
}

// requiredProps lists the minimum properties per schema type for complete
// rich results.
var requiredProps = map[string][]string{
	"Organization":   {"name", "url"},
	"LocalBusiness":  {"name", "address"},
	"Product":        {"name"},
	"Article":        {"headline", "author", "datePublished"},
	"BlogPosting":    {"headline", "author", "datePublished"},
	"NewsArticle":    {"headline", "author", "datePublished"},
	"WebSite":        {"name", "url"},
	"BreadcrumbList": {"itemListElement"},
	"VideoObject":    {"name", "uploadDate"},
	"Event":          {"name", "startDate"},
}

// Schema validates the page's JSON-LD structured data blocks.
type Schema struct{}

func NewSchema() *Schema {
	return &Schema{}
}

func (a *Schema) Name() string {
	return "schema"
}

func (a *Schema) Analyze(_ context.Context, page *models.ParsedPage, _ *models.FetchResult) models.CategoryResult {
	l := NewLedger(a.Name())
	schemas := page.Schemas

	if len(schemas) == 0 {
		l.Record("schema-none", models.SeverityHigh, "No structured data found",
			"No JSON-LD schema markup detected.",
			"Add JSON-LD schema (Organization, WebSite, BreadcrumbList at minimum). Pages with schema have ~2.5x higher chance in AI answers.",
			"Missing rich results + AI visibility", 25)
		return models.CategoryResult{
			Name:    a.Name(),
			Label:   "Schema & Structured Data",
			Score:   l.Score(),
			Weight:  0.10,
			Issues:  l.Issues(),
			Summary: fmt.Sprintf("Schema score: %d/100. No structured data found.", l.Score()),
		}
	}

	foundTypes := map[string]bool{}
	var typeOrder []string

	for _, schema := range schemas {
		ctxVal, _ := schema["@context"].(string)
		if ctxVal == "" {
			l.Record("schema-no-context", models.SeverityHigh, "Schema missing @context",
				"JSON-LD block has no @context property.",
				"Add '@context': 'https://schema.org'.", "Invalid schema", 8)
		} else if strings.Contains(ctxVal, "http://schema.org") && !strings.Contains(ctxVal, "https") {
			l.Record("schema-http-context", models.SeverityMedium, "Schema uses http:// context",
				"Use https://schema.org instead of http://.",
				"Change @context to 'https://schema.org'.",
				"May cause validation warnings", 3)
		}

		schemaType := schema.Type()
		if schemaType == "" {
			continue
		}
		if !foundTypes[schemaType] {
			foundTypes[schemaType] = true
			typeOrder = append(typeOrder, schemaType)
		}

		if dropped, ok := deprecatedTypes[schemaType]; ok {
			l.Record("schema-deprecated-"+strings.ToLower(schemaType), models.SeverityHigh,
				fmt.Sprintf("Deprecated schema type: %s", schemaType),
				fmt.Sprintf("%s was deprecated in %s.", schemaType, dropped),
				fmt.Sprintf("Remove %s schema — Google no longer supports it.", schemaType),
				"No rich results, wasted markup", 10)
		}

		if restriction, ok := restrictedTypes[schemaType]; ok {
			l.Record("schema-restricted-"+strings.ToLower(schemaType), models.SeverityMedium,
				fmt.Sprintf("Restricted schema type: %s", schemaType),
				restriction+".",
				fmt.Sprintf("Only use %s if your site qualifies.", schemaType),
				"May not generate rich results", 5)
		}

		if props, ok := requiredProps[schemaType]; ok {
			var missing []string
			for _, p := range props {
				if _, present := schema[p]; !present {
					missing = append(missing, p)
				}
			}
			if len(missing) > 0 {
				l.Record("schema-missing-props-"+strings.ToLower(schemaType), models.SeverityMedium,
					fmt.Sprintf("%s missing required properties", schemaType),
					fmt.Sprintf("Missing: %s.", strings.Join(missing, ", ")),
					fmt.Sprintf("Add %s to your %s schema.", strings.Join(missing, ", "), schemaType),
					"Incomplete rich results", 5)
			}
		}
	}

	if !foundTypes["Organization"] && !foundTypes["LocalBusiness"] {
		l.Record("schema-no-org", models.SeverityMedium, "No Organization/LocalBusiness schema",
			"Missing organizational identity schema.",
			"Add Organization or LocalBusiness schema.",
			"Missing brand knowledge panel", 5)
	}

	if !foundTypes["BreadcrumbList"] {
		l.Record("schema-no-breadcrumb", models.SeverityLow, "No BreadcrumbList schema",
			"Breadcrumb navigation not marked up.",
			"Add BreadcrumbList schema for better SERP display.",
			"Missing breadcrumb rich results", 3)
	}

	if !foundTypes["WebSite"] {
		l.Record("schema-no-website", models.SeverityLow, "No WebSite schema",
			"Missing WebSite schema with search action.",
			"Add WebSite schema for sitelinks searchbox.",
			"Missing sitelinks searchbox", 3)
	}

	// Scored but not reported as an issue.
	if len(page.OpenGraph) == 0 {
		l.Deduct(5)
	}

	return models.CategoryResult{
		Name:   a.Name(),
		Label:  "Schema & Structured Data",
		Score:  l.Score(),
		Weight: 0.10,
		Issues: l.Issues(),
		Summary: fmt.Sprintf("Schema score: %d/100. Found %d schema blocks (%s).",
			l.Score(), len(schemas), typeListOrNone(typeOrder)),
	}
}

func typeListOrNone(types []string) string {
	if len(types) == 0 {
		return "none"
	}
	return strings.Join(types, ", ")
}
