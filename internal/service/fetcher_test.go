package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"seo_audit_engine/internal/domain/adaptors"
)

// stubWebClient serves canned responses per URL. Unknown URLs fail like an
// unreachable host.
type stubWebClient struct {
	mu        sync.Mutex
	responses map[string]*adaptors.WebResponse
	errs      map[string]error
	requested []string
}

func newStubWebClient() *stubWebClient {
	return &stubWebClient{
		responses: map[string]*adaptors.WebResponse{},
		errs:      map[string]error{},
	}
}

func (s *stubWebClient) serve(url string, statusCode int, body string) {
	s.responses[url] = &adaptors.WebResponse{
		Body:       []byte(body),
		StatusCode: statusCode,
		FinalURL:   url,
		Headers:    map[string]string{"Content-Type": "text/html"},
	}
}

func (s *stubWebClient) Do(_ context.Context, url string, _ string) (*adaptors.WebResponse, error) {
	s.mu.Lock()
	s.requested = append(s.requested, url)
	s.mu.Unlock()

	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if resp, ok := s.responses[url]; ok {
		return resp, nil
	}
	return nil, errors.New("url is unreachable")
}

func (s *stubWebClient) requestedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requested...)
}

func TestFetcher_FetchesPageAndAuxiliaryResources(t *testing.T) {
	client := newStubWebClient()
	client.serve("https://example.com", http.StatusOK, "<html><title>Hi</title></html>")
	client.serve("https://example.com/robots.txt", http.StatusOK, "User-agent: *\nAllow: /")
	client.serve("https://example.com/sitemap.xml", http.StatusOK, "<urlset/>")
	client.serve("https://example.com/llms.txt", http.StatusOK, "# Example")

	result := NewFetcher(client, log.New()).Fetch(context.Background(), "https://example.com")

	assert.Empty(t, result.Error)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "<title>Hi</title>")
	assert.Equal(t, "User-agent: *\nAllow: /", result.RobotsTxt)
	assert.Equal(t, "<urlset/>", result.SitemapXML)
	assert.Equal(t, "# Example", result.LlmsTxt)
	assert.Len(t, client.requestedURLs(), 4)
}

func TestFetcher_SchemeDefaultsToHTTPS(t *testing.T) {
	client := newStubWebClient()
	client.serve("https://example.com", http.StatusOK, "<html></html>")

	result := NewFetcher(client, log.New()).Fetch(context.Background(), "example.com")

	assert.Empty(t, result.Error)
	assert.Equal(t, "https://example.com", result.URL)
}

func TestFetcher_RejectsNonHTTPScheme(t *testing.T) {
	client := newStubWebClient()

	result := NewFetcher(client, log.New()).Fetch(context.Background(), "ftp://example.com")

	assert.NotEmpty(t, result.Error)
	assert.Contains(t, result.Error, "invalid URL scheme")
	assert.Empty(t, client.requestedURLs())
}

func TestFetcher_PageFailureSetsError(t *testing.T) {
	client := newStubWebClient()
	client.errs["https://example.com"] = errors.New("connection refused")
	client.serve("https://example.com/robots.txt", http.StatusOK, "User-agent: *")

	result := NewFetcher(client, log.New()).Fetch(context.Background(), "https://example.com")

	assert.Contains(t, result.Error, "connection refused")
	// Auxiliary resources that did resolve are still recorded.
	assert.Equal(t, "User-agent: *", result.RobotsTxt)
}

func TestFetcher_AuxiliaryFailuresAreAbsorbed(t *testing.T) {
	client := newStubWebClient()
	client.serve("https://example.com", http.StatusOK, "<html></html>")
	client.serve("https://example.com/robots.txt", http.StatusNotFound, "not found")
	// sitemap and llms are unreachable entirely.

	result := NewFetcher(client, log.New()).Fetch(context.Background(), "https://example.com")

	assert.Empty(t, result.Error)
	// A 404 body is not a robots policy.
	assert.Empty(t, result.RobotsTxt)
	assert.Empty(t, result.SitemapXML)
	assert.Empty(t, result.LlmsTxt)
}

func TestFetcher_AuxiliaryURLsUseFinalOrigin(t *testing.T) {
	client := newStubWebClient()
	client.serve("https://example.com/deep/page", http.StatusOK, "<html></html>")
	client.serve("https://example.com/robots.txt", http.StatusOK, "User-agent: *")

	NewFetcher(client, log.New()).Fetch(context.Background(), "https://example.com/deep/page")

	requested := client.requestedURLs()
	assert.Contains(t, requested, "https://example.com/robots.txt")
	assert.Contains(t, requested, "https://example.com/sitemap.xml")
	assert.Contains(t, requested, "https://example.com/llms.txt")
	for _, u := range requested {
		assert.False(t, strings.Contains(u, "/deep/robots"), u)
	}
}
