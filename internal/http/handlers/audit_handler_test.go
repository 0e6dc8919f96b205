package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/domain/models"
	"seo_audit_engine/internal/service"
)

// pageWebClient serves one fixed page for every request.
type pageWebClient struct {
	html string
	err  error
}

func (c *pageWebClient) Do(_ context.Context, url string, _ string) (*adaptors.WebResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &adaptors.WebResponse{
		Body:       []byte(c.html),
		StatusCode: http.StatusOK,
		FinalURL:   url,
		Headers:    map[string]string{},
	}, nil
}

func newTestHandler(client adaptors.WebClient, apiSecret string) *AuditHandler {
	logger := log.New()
	return NewAuditHandler(service.NewEngine(client, nil, logger), apiSecret, logger)
}

func postAudit(h *AuditHandler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestAuditHandler_Success(t *testing.T) {
	client := &pageWebClient{html: `<html lang="en"><head><title>A reasonably long page title here</title></head><body><h1>Hi</h1></body></html>`}
	h := newTestHandler(client, "")

	rec := postAudit(h, `{"url": "https://example.com"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.AuditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Error)
	assert.Len(t, result.Categories, 7)
	assert.Equal(t, "example.com", result.Domain)
}

func TestAuditHandler_APIKey(t *testing.T) {
	h := newTestHandler(&pageWebClient{html: "<html></html>"}, "s3cret")

	t.Run("missing key rejected", func(t *testing.T) {
		rec := postAudit(h, `{"url": "https://example.com"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		rec := postAudit(h, `{"url": "https://example.com"}`, map[string]string{"X-API-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("matching key accepted", func(t *testing.T) {
		rec := postAudit(h, `{"url": "https://example.com"}`, map[string]string{"X-API-Key": "s3cret"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuditHandler_Validation(t *testing.T) {
	h := newTestHandler(&pageWebClient{html: "<html></html>"}, "")

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"url": `},
		{"empty url", `{"url": ""}`},
		{"bad scheme", `{"url": "ftp://example.com"}`},
		{"localhost blocked", `{"url": "http://localhost:8080/admin"}`},
		{"loopback blocked", `{"url": "http://127.0.0.1/"}`},
		{"private range blocked", `{"url": "http://192.168.1.10/"}`},
		{"bad competitor url", `{"url": "https://example.com", "competitor_url": "http://10.0.0.5/"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postAudit(h, tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuditHandler_FetchFailureReturnsBadGateway(t *testing.T) {
	h := newTestHandler(&pageWebClient{err: assert.AnError}, "")

	rec := postAudit(h, `{"url": "https://unreachable.example.com"}`, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var result models.AuditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.OverallScore)
}
