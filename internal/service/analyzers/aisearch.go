package analyzers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
)

// Sub-score buckets and their starting budgets. The budgets sum to the
// category's starting score, so the overall score and the buckets stay
// consistent: every deduction is charged to exactly one bucket.
var subScoreBuckets = []struct {
	key    string
	label  string
	budget int
}{
	{"citability", "Citability", 25},
	{"structure", "Structure", 20},
	{"multiModal", "Multi-Modal", 15},
	{"authority", "Authority", 20},
	{"technical", "Technical AI Access", 20},
}

// Deltas within this band are sub-score noise, not a real difference.
const comparisonNoiseBand = 3

var (
	directAnswerPatterns = []string{" is ", " refers to ", " defined as ", " means ", " are "}
	questionPrefixes     = []string{"what ", "how ", "why ", "when ", "where ", "which ", "who "}
	statisticsRe         = regexp.MustCompile(`\d+%|\d+\.\d+|\$\d+|[\d,]+\s*(users|customers|companies|revenue|growth)`)
	bylineRe             = regexp.MustCompile(`(?i)(rel=["']author["']|class=["'][^"']*author[^"']*["']|itemprop=["']author["'])`)
)

// AISearch scores how well the page serves AI search engines across five
// weighted sub-dimensions, optionally diffing the deterministic results
// against a competitor document.
type AISearch struct {
	provider adaptors.InsightProvider
	log      *log.Logger
}

// NewAISearch builds the analyzer. provider may be nil; the query simulation
// enrichment is then skipped.
func NewAISearch(provider adaptors.InsightProvider, logger *log.Logger) *AISearch {
	return &AISearch{
		provider: provider,
		log:      logger,
	}
}

func (a *AISearch) Name() string {
	return "geo"
}

func (a *AISearch) Analyze(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult {
	return a.AnalyzeWithCompetitor(ctx, page, fetch, nil, nil)
}

// AnalyzeWithCompetitor runs the full analysis. When both competitor inputs
// are non-nil the deterministic checks are re-run against the second
// document and the per-bucket deltas reported as advantages and gaps.
func (a *AISearch) AnalyzeWithCompetitor(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult, competitorPage *models.ParsedPage, competitorFetch *models.FetchResult) models.CategoryResult {
	run := a.runChecks(page, fetch)

	details := &models.AISearchDetails{
		SubScores:           run.subScores,
		AICrawlerStatus:     run.crawlerStatus,
		LlmsTxtStatus:       run.llmsStatus,
		CitablePassageCount: run.citableCount,
		AISimulation:        a.simulateQueries(ctx, page, fetch),
	}

	var comparison *models.CompetitorComparison
	if competitorPage != nil && competitorFetch != nil {
		comparison = a.compare(run, competitorPage, competitorFetch)
	}

	allowed := 0
	for _, status := range run.crawlerStatus {
		if status == "allowed" {
			allowed++
		}
	}

	return models.CategoryResult{
		Name:   a.Name(),
		Label:  "AI Search (GEO)",
		Score:  run.ledger.Score(),
		Weight: 0.20,
		Issues: run.ledger.Issues(),
		Summary: fmt.Sprintf("AI Search (GEO) score: %d/100. %d citable passages. %d/%d AI crawlers allowed.",
			run.ledger.Score(), run.citableCount, allowed, len(run.crawlerStatus)),
		AISearchDetails: details,
		Competitor:      comparison,
	}
}

// geoRun accumulates one deterministic pass: the overall ledger plus the
// per-bucket balances, each independently clamped at zero.
type geoRun struct {
	ledger        *Ledger
	subScores     map[string]int
	citableCount  int
	crawlerStatus map[string]string
	llmsStatus    string
}

func (r *geoRun) record(id string, severity models.Severity, title, description, recommendation, impact string, points int, bucket string) {
	r.ledger.Record(id, severity, title, description, recommendation, impact, points)
	remaining := r.subScores[bucket] - points
	if remaining < 0 {
		remaining = 0
	}
	r.subScores[bucket] = remaining
}

func (a *AISearch) runChecks(page *models.ParsedPage, fetch *models.FetchResult) *geoRun {
	run := &geoRun{
		ledger:    NewLedger(a.Name()),
		subScores: make(map[string]int, len(subScoreBuckets)),
	}
	for _, b := range subScoreBuckets {
		run.subScores[b.key] = b.budget
	}

	wordCount := page.WordCount
	bodyText := page.BodyText
	robotsTxt := fetch.RobotsTxt

	// A. Citability.
	run.citableCount = countCitablePassages(page.Paragraphs)

	if run.citableCount == 0 && wordCount > 200 {
		run.record("geo-no-citable-passages", models.SeverityHigh,
			"No citable passages",
			"Zero paragraphs in the 50-200 word sweet spot for AI citations.",
			"Structure content with 50-200 word paragraphs (optimal: 134-167 words).",
			"AI systems cannot extract clean citations", 12, "citability")
	} else if run.citableCount < 3 && wordCount > 500 {
		run.record("geo-few-citable-passages", models.SeverityMedium,
			"Few citable passages",
			fmt.Sprintf("Only %d passage(s) in the AI-citation sweet spot.", run.citableCount),
			"Break content into more 50-200 word paragraphs.",
			"Limited citation opportunities", 6, "citability")
	}

	opening := bodyText
	if len(opening) > 500 {
		opening = opening[:500]
	}
	opening = strings.ToLower(opening)
	hasDirectAnswer := false
	for _, pattern := range directAnswerPatterns {
		if strings.Contains(opening, pattern) {
			hasDirectAnswer = true
			break
		}
	}
	if !hasDirectAnswer && wordCount > 200 {
		run.record("geo-no-direct-answer", models.SeverityMedium,
			"No direct answer pattern",
			"Opening content doesn't include direct definitions (e.g., 'X is...').",
			"Start with a clear definition. AI search prefers direct answers early.",
			"Lower citation priority", 5, "citability")
	}

	if !statisticsRe.MatchString(bodyText) && wordCount > 200 {
		run.record("geo-no-statistics", models.SeverityLow,
			"No data points or statistics",
			"No quantitative data found in body content.",
			"Add specific numbers, percentages, or data points to strengthen citations.",
			"Weaker citation authority", 4, "citability")
	}

	// B. Structural readability.
	questionHeadings := 0
	for _, h := range page.HeadingTexts() {
		lowered := strings.ToLower(h)
		isQuestion := strings.HasSuffix(h, "?")
		for _, prefix := range questionPrefixes {
			if strings.HasPrefix(lowered, prefix) {
				isQuestion = true
				break
			}
		}
		if isQuestion {
			questionHeadings++
		}
	}
	if questionHeadings == 0 && wordCount > 500 {
		run.record("geo-no-question-headings", models.SeverityMedium,
			"No question-based headings",
			"No headings match AI query patterns (What, How, Why...).",
			"Add question-based H2/H3 headings that match how users ask AI.",
			"Lower AI Overviews citation chance", 6, "structure")
	}

	hasH2 := len(page.H(2)) > 0
	hasH3 := len(page.H(3)) > 0
	hasH4 := len(page.H(4)) > 0
	if (hasH3 && !hasH2) || (hasH4 && !hasH3) {
		run.record("geo-broken-hierarchy", models.SeverityMedium,
			"Broken heading hierarchy",
			"Heading levels are skipped (e.g., H3 without H2).",
			"Maintain proper H1 → H2 → H3 hierarchy for AI parsing.",
			"AI may misinterpret content structure", 5, "structure")
	}

	if page.Lists.Unordered+page.Lists.Ordered == 0 && wordCount > 300 {
		run.record("geo-no-lists", models.SeverityLow,
			"No list elements",
			"No unordered or ordered lists found.",
			"Use bullet/numbered lists. AI search frequently cites list content.",
			"Missed featured snippet opportunity", 4, "structure")
	}

	avgParaWords := avgParagraphWords(page.Paragraphs)
	if avgParaWords > 100 && wordCount > 300 {
		run.record("geo-wall-of-text", models.SeverityMedium,
			"Wall of text detected",
			fmt.Sprintf("Average paragraph length: %.0f words.", avgParaWords),
			"Break into shorter paragraphs (50-100 words max).",
			"AI struggles to extract specific claims", 5, "structure")
	}

	// C. Multi-modal content.
	imageCount := len(page.Images)
	if imageCount == 0 && wordCount > 300 {
		run.record("geo-no-images", models.SeverityMedium,
			"No images",
			"Page has no images despite substantial text content.",
			"Add relevant images. Multi-modal pages rank higher in AI results.",
			"Lower engagement and AI ranking signals", 8, "multiModal")
	}

	if len(page.Videos) == 0 {
		run.record("geo-no-video", models.SeverityLow,
			"No video content",
			"No video or video embeds detected.",
			"Consider adding video. AI platforms increasingly surface video content.",
			"Missing multi-modal signal", 4, "multiModal")
	}

	imagesWithoutAlt := 0
	for _, img := range page.Images {
		if img.Alt == "" {
			imagesWithoutAlt++
		}
	}
	if imageCount > 0 && float64(imagesWithoutAlt)/float64(imageCount) > 0.5 {
		run.record("geo-images-no-alt", models.SeverityLow,
			"Most images lack alt text",
			fmt.Sprintf("%d/%d images have no alt text.", imagesWithoutAlt, imageCount),
			"Add descriptive alt text to all images for AI understanding.",
			"AI cannot understand image content", 3, "multiModal")
	}

	// D. Authority and brand signals.
	hasPerson := false
	hasDates := false
	hasOrg := false
	hasSameAs := false
	for _, schema := range page.Schemas {
		switch schema.Type() {
		case "Person", "ProfilePage":
			hasPerson = true
		case "Organization":
			hasOrg = true
		}
		if schema["datePublished"] != nil || schema["dateModified"] != nil {
			hasDates = true
		}
		if schema["sameAs"] != nil {
			hasSameAs = true
		}
	}
	hasByline := bylineRe.MatchString(fetch.HTML)

	if !hasPerson && !hasByline && wordCount > 300 {
		run.record("geo-no-author", models.SeverityMedium,
			"No author attribution",
			"No Person schema or author byline found.",
			"Add author information with Person schema. AI values attributed content.",
			"Weaker E-E-A-T signal for AI", 6, "authority")
	}

	if !hasDates && wordCount > 300 {
		run.record("geo-no-dates", models.SeverityMedium,
			"No publication dates",
			"No datePublished or dateModified in schema.",
			"Add date metadata. AI search prioritizes fresh, dated content.",
			"AI cannot determine content freshness", 5, "authority")
	}

	if !hasOrg {
		run.record("geo-no-org-schema", models.SeverityLow,
			"No Organization schema",
			"No Organization structured data found.",
			"Add Organization JSON-LD to establish brand authority.",
			"Weaker brand signal for AI", 4, "authority")
	}

	if len(page.ExternalLinks) < 2 && wordCount > 300 {
		run.record("geo-no-source-citations", models.SeverityLow,
			"Few source citations",
			fmt.Sprintf("Only %d external link(s). AI values well-sourced content.", len(page.ExternalLinks)),
			"Add citations to authoritative sources.",
			"Lower perceived trustworthiness", 3, "authority")
	}

	if !hasSameAs {
		run.record("geo-no-same-as", models.SeverityLow,
			"No sameAs in schema",
			"No sameAs property linking to social profiles.",
			"Add sameAs URLs to Organization/Person schema.",
			"Weaker entity recognition", 2, "authority")
	}

	// E. Technical AI accessibility.
	wildcardBlocked := robotsBlocksAll(robotsTxt)
	if wildcardBlocked {
		run.record("geo-wildcard-block", models.SeverityCritical,
			"All bots blocked via wildcard",
			"robots.txt blocks all crawlers with 'Disallow: /'. Site is invisible to AI search.",
			"Remove the wildcard block or allow specific AI crawlers.",
			"Completely invisible to AI search", 10, "technical")
	}

	var keyBlocked []string
	for _, crawler := range AICrawlers {
		if keyAICrawlers[crawler] && robotsBlocksCrawler(robotsTxt, crawler) {
			keyBlocked = append(keyBlocked, crawler)
		}
	}
	if len(keyBlocked) > 0 && !wildcardBlocked {
		run.record("geo-crawlers-blocked", models.SeverityHigh,
			"AI crawlers blocked",
			fmt.Sprintf("Blocked in robots.txt: %s.", strings.Join(keyBlocked, ", ")),
			"Allow GPTBot, ClaudeBot, PerplexityBot to crawl your site.",
			"Invisible to major AI search engines", 8, "technical")
	}

	if fetch.LlmsTxt == "" {
		run.record("geo-no-llms-txt", models.SeverityMedium,
			"No llms.txt file",
			"No /llms.txt found. This standard helps AI systems understand your site.",
			"Create a /llms.txt file describing your site for AI systems.",
			"Missed AI discoverability signal", 5, "technical")
	}

	if len(renderBlockingScripts(page.Scripts)) > 10 {
		run.record("geo-js-dependent", models.SeverityMedium,
			"Heavy JavaScript dependency",
			fmt.Sprintf("%d render-blocking scripts. AI crawlers may not execute JS.", len(renderBlockingScripts(page.Scripts))),
			"Add async/defer to scripts. Ensure content is in initial HTML.",
			"AI crawlers may see empty page", 5, "technical")
	}

	run.crawlerStatus = crawlerAccessStatus(robotsTxt)

	trimmed := strings.TrimSpace(fetch.LlmsTxt)
	switch {
	case len(trimmed) >= 50:
		run.llmsStatus = "present"
	case fetch.LlmsTxt != "":
		run.llmsStatus = "thin"
	default:
		run.llmsStatus = "missing"
	}

	return run
}

// compare re-runs the deterministic checks on the competitor document and
// diffs the sub-scores. Deltas inside the noise band are omitted.
func (a *AISearch) compare(ours *geoRun, competitorPage *models.ParsedPage, competitorFetch *models.FetchResult) *models.CompetitorComparison {
	theirs := a.runChecks(competitorPage, competitorFetch)

	advantages := []string{}
	gaps := []string{}
	for _, b := range subScoreBuckets {
		delta := ours.subScores[b.key] - theirs.subScores[b.key]
		if delta > comparisonNoiseBand {
			advantages = append(advantages, fmt.Sprintf("%s (+%d)", b.label, delta))
		} else if delta < -comparisonNoiseBand {
			gaps = append(gaps, fmt.Sprintf("%s (%d)", b.label, delta))
		}
	}

	return &models.CompetitorComparison{
		CompetitorURL:        competitorFetch.FinalURL,
		YourScore:            ours.ledger.Score(),
		CompetitorScore:      theirs.ledger.Score(),
		YourSubScores:        ours.subScores,
		CompetitorSubScores:  theirs.subScores,
		Advantages:           advantages,
		Gaps:                 gaps,
		CompetitorIssueCount: len(theirs.ledger.Issues()),
	}
}

// simulateQueries asks the provider for example queries and citation
// likelihoods. Enrichment only; failures degrade to nil.
func (a *AISearch) simulateQueries(ctx context.Context, page *models.ParsedPage, fetch *models.FetchResult) *models.AISimulation {
	if a.provider == nil {
		return nil
	}

	raw, err := a.provider.Infer(ctx, adaptors.InsightQuerySimulation, page.BodyText, fetch.FinalURL, page.Title)
	if err != nil {
		a.log.WithError(err).Debug(`ai query simulation skipped`)
		return nil
	}

	var simulation models.AISimulation
	if err := json.Unmarshal(raw, &simulation); err != nil {
		a.log.WithError(err).Debug(`ai query simulation response malformed, skipped`)
		return nil
	}
	return &simulation
}

func countCitablePassages(paragraphs []string) int {
	count := 0
	for _, p := range paragraphs {
		words := len(strings.Fields(p))
		if words >= 50 && words <= 200 {
			count++
		}
	}
	return count
}

func avgParagraphWords(paragraphs []string) float64 {
	if len(paragraphs) == 0 {
		return 0
	}
	total := 0
	for _, p := range paragraphs {
		total += len(strings.Fields(p))
	}
	return float64(total) / float64(len(paragraphs))
}
