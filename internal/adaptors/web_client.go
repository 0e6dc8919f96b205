package adaptors

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"seo_audit_engine/internal/pkg/errors"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/pkg/metrics"
)

type WebClient struct {
	client *http.Client
	log    *log.Logger
}

// NewWebClient builds the outbound HTTP client used for page and resource
// fetches. The round tripper is instrumented with Prometheus client metrics
// and the timeout applies per outbound call.
func NewWebClient(timeout time.Duration, log *log.Logger) *WebClient {
	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	return &WebClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: rTripper,
		},
		log: log,
	}
}

func (w *WebClient) Do(ctx context.Context, url string, method string) (*adaptors.WebResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		w.log.WithError(err).Error(`failed to create request`)
		return nil, errors.Wrap(err, `failed to create request`)
	}

	// Set headers to mimic a browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	// Capture the intermediate hops so analyzers can flag redirect chains.
	var mu sync.Mutex
	var redirectChain []string
	client := *w.client
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return http.ErrUseLastResponse
		}
		mu.Lock()
		redirectChain = append(redirectChain, via[len(via)-1].URL.String())
		mu.Unlock()
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		w.log.WithError(err).Error(`url is unreachable`)
		return nil, errors.Wrap(err, `url is unreachable`)
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(resp.Body)
	if err != nil {
		w.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, errors.Wrap(err, `failed to read response body`)
	}

	headers := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		headers[k] = strings.Join(v, ", ")
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &adaptors.WebResponse{
		Body:          bodyByte,
		StatusCode:    resp.StatusCode,
		FinalURL:      finalURL,
		Headers:       headers,
		RedirectChain: redirectChain,
	}, nil
}
