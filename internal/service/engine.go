package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
	"seo_audit_engine/internal/pkg/metrics"
	"seo_audit_engine/internal/service/analyzers"
)

// ProgressFunc receives coarse-grained phase updates. The percentage is
// monotonically increasing across one audit.
type ProgressFunc func(step string, percent int)

// analyzerStep pairs an analyzer with its progress label and percentage.
type analyzerStep struct {
	analyzer analyzers.Analyzer
	label    string
	percent  int
}

// Engine orchestrates one audit: fetch, parse, the seven analyzers in fixed
// order, then aggregation. Every audit is a stateless one-shot pass; nothing
// is cached across calls.
type Engine struct {
	fetcher  *Fetcher
	parser   *Parser
	steps    []analyzerStep
	aiSearch *analyzers.AISearch
	log      *log.Logger
}

// NewEngine wires the analyzer registry. The registry order is the
// documented category output order: technical, content, onpage, schema,
// performance, images, geo.
func NewEngine(webClient adaptors.WebClient, provider adaptors.InsightProvider, logger *log.Logger) *Engine {
	aiSearch := analyzers.NewAISearch(provider, logger)
	return &Engine{
		fetcher: NewFetcher(webClient, logger),
		parser:  NewParser(logger),
		steps: []analyzerStep{
			{analyzers.NewTechnical(), "Analyzing technical SEO...", 25},
			{analyzers.NewContent(provider, logger), "Analyzing content quality (AI-powered)...", 35},
			{analyzers.NewOnPage(), "Analyzing on-page SEO...", 55},
			{analyzers.NewSchema(), "Analyzing structured data...", 65},
			{analyzers.NewPerformance(), "Analyzing performance...", 75},
			{analyzers.NewImages(), "Analyzing images...", 85},
		},
		aiSearch: aiSearch,
		log:      logger,
	}
}

// RunAudit is the sole entry point the request layer calls. competitorURL
// may be empty; onProgress may be nil. A primary fetch failure short-circuits
// to an error result without running any analyzer. A competitor failure only
// drops the comparison.
func (e *Engine) RunAudit(ctx context.Context, targetURL string, competitorURL string, onProgress ProgressFunc) *models.AuditResult {
	start := time.Now()
	progress := safeProgress(onProgress, e.log)

	progress("Fetching page...", 5)

	var fetchResult, competitorFetch *models.FetchResult
	if competitorURL != "" {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			fetchResult = e.fetcher.Fetch(gctx, targetURL)
			return nil
		})
		g.Go(func() error {
			competitorFetch = e.fetcher.Fetch(gctx, competitorURL)
			return nil
		})
		_ = g.Wait()
	} else {
		fetchResult = e.fetcher.Fetch(ctx, targetURL)
	}

	if fetchResult.Error != "" {
		e.log.WithField(`url`, targetURL).Error(`audit aborted: page fetch failed`)
		metrics.AuditsTotal.WithLabelValues("fetch_error").Inc()
		return errorResult(targetURL, fetchResult.Error)
	}

	progress("Parsing HTML...", 15)

	parsed, err := e.parser.Parse(fetchResult.HTML, fetchResult.FinalURL)
	if err != nil {
		e.log.WithError(err).Error(`audit aborted: html parse failed`)
		metrics.AuditsTotal.WithLabelValues("parse_error").Inc()
		return errorResult(targetURL, err.Error())
	}

	var competitorParsed *models.ParsedPage
	if competitorFetch != nil {
		if competitorFetch.Error == "" {
			competitorParsed, err = e.parser.Parse(competitorFetch.HTML, competitorFetch.FinalURL)
			if err != nil {
				e.log.WithError(err).Warn(`competitor parse failed, comparison omitted`)
				competitorParsed = nil
			}
		} else {
			e.log.WithField(`url`, competitorURL).Warn(`competitor fetch failed, comparison omitted`)
		}
	}

	categories := make([]models.CategoryResult, 0, len(e.steps)+1)
	for _, step := range e.steps {
		progress(step.label, step.percent)
		categories = append(categories, step.analyzer.Analyze(ctx, parsed, fetchResult))
	}

	progress("Analyzing AI search readiness...", 90)
	if competitorParsed != nil && competitorFetch.Error == "" {
		categories = append(categories, e.aiSearch.AnalyzeWithCompetitor(ctx, parsed, fetchResult, competitorParsed, competitorFetch))
	} else {
		categories = append(categories, e.aiSearch.Analyze(ctx, parsed, fetchResult))
	}

	progress("Generating report...", 95)

	results := BuildResults(categories, fetchResult.FinalURL, parsed.Title, parsed.MetaDescription, time.Since(start).Milliseconds())

	metrics.AuditsTotal.WithLabelValues("ok").Inc()
	metrics.AuditDuration.Observe(time.Since(start).Seconds())

	progress("Complete", 100)
	return results
}

// safeProgress guards the audit against a misbehaving callback: a nil or
// panicking callback never changes the outcome.
func safeProgress(onProgress ProgressFunc, logger *log.Logger) ProgressFunc {
	return func(step string, percent int) {
		if onProgress == nil {
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				logger.Warnf("progress callback panicked: %v", rec)
			}
		}()
		onProgress(step, percent)
	}
}

func errorResult(targetURL string, message string) *models.AuditResult {
	return &models.AuditResult{
		OverallScore: 0,
		Categories:   []models.CategoryResult{},
		TopFixes:     []models.Issue{},
		URL:          targetURL,
		Error:        message,
	}
}
