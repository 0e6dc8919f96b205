package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
	"seo_audit_engine/internal/pkg/worker_pool"
)

// auxiliaryResources are the root files fetched alongside the page.
var auxiliaryResources = []struct {
	id   string
	path string
}{
	{"robots", "/robots.txt"},
	{"sitemap", "/sitemap.xml"},
	{"llms", "/llms.txt"},
}

// Fetcher retrieves the target document plus the three auxiliary root
// resources concurrently. Transport failures on the page set
// FetchResult.Error; auxiliary failures are absorbed and leave the resource
// empty.
type Fetcher struct {
	webClient adaptors.WebClient
	log       *log.Logger
}

func NewFetcher(webClient adaptors.WebClient, logger *log.Logger) *Fetcher {
	return &Fetcher{
		webClient: webClient,
		log:       logger,
	}
}

// Fetch never returns a Go error; a failed page fetch is conveyed on the
// result itself so the orchestrator decides how to degrade.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *models.FetchResult {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return &models.FetchResult{URL: rawURL, Error: err.Error()}
	}

	parsed, _ := url.Parse(target)
	origin := parsed.Scheme + "://" + parsed.Host

	result := &models.FetchResult{
		URL:      target,
		FinalURL: target,
		Headers:  map[string]string{},
	}

	pool := worker_pool.NewWorkerPool(ctx, 4, f.log)

	_ = pool.Submit("page", func(ctx context.Context) (any, error) {
		return f.webClient.Do(ctx, target, http.MethodGet)
	})
	for _, res := range auxiliaryResources {
		resourceURL := origin + res.path
		_ = pool.Submit(res.id, func(ctx context.Context) (any, error) {
			return f.webClient.Do(ctx, resourceURL, http.MethodGet)
		})
	}
	pool.Stop()

	for i := 0; i < 1+len(auxiliaryResources); i++ {
		taskResult, ok := <-pool.ResultsCh
		if !ok {
			break
		}
		resp, _ := taskResult.Result.(*adaptors.WebResponse)

		if taskResult.ID == "page" {
			if taskResult.Err != nil {
				result.Error = taskResult.Err.Error()
				continue
			}
			result.FinalURL = resp.FinalURL
			result.StatusCode = resp.StatusCode
			result.HTML = string(resp.Body)
			result.Headers = resp.Headers
			result.RedirectChain = resp.RedirectChain
			continue
		}

		// Auxiliary resources only count when they resolve cleanly.
		if taskResult.Err != nil || resp.StatusCode != http.StatusOK {
			continue
		}
		switch taskResult.ID {
		case "robots":
			result.RobotsTxt = string(resp.Body)
		case "sitemap":
			result.SitemapXML = string(resp.Body)
		case "llms":
			result.LlmsTxt = string(resp.Body)
		}
	}

	return result
}

// normalizeURL defaults a missing scheme to https and rejects anything that
// is not http(s).
func normalizeURL(rawURL string) (string, error) {
	candidate := rawURL
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme == "" {
		candidate = "https://" + strings.TrimPrefix(rawURL, "//")
		parsed, err = url.Parse(candidate)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %s", rawURL)
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid URL scheme: %s", parsed.Scheme)
	}
	return candidate, nil
}
