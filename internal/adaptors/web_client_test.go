package adaptors

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// RoundTripFunc lets us mock http.RoundTripper easily.
type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestWebClient_Do(t *testing.T) {
	logger := log.New()
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hop":
			http.Redirect(w, r, "/final", http.StatusMovedPermanently)
		case "/final":
			w.Header().Set("X-Powered-By", "test")
			io.WriteString(w, "landed")
		default:
			io.WriteString(w, "OK")
		}
	}))
	defer server.Close()

	t.Run("success", func(t *testing.T) {
		wc := NewWebClient(1*time.Second, logger)

		resp, err := wc.Do(ctx, server.URL+"/", http.MethodGet)
		assert.NoError(t, err)
		assert.Equal(t, "OK", string(resp.Body))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.RedirectChain)
	})

	t.Run("redirect chain captured", func(t *testing.T) {
		wc := NewWebClient(1*time.Second, logger)

		resp, err := wc.Do(ctx, server.URL+"/hop", http.MethodGet)
		assert.NoError(t, err)
		assert.Equal(t, "landed", string(resp.Body))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{server.URL + "/hop"}, resp.RedirectChain)
		assert.Equal(t, server.URL+"/final", resp.FinalURL)
		assert.Equal(t, "test", resp.Headers["X-Powered-By"])
	})

	t.Run("network error", func(t *testing.T) {
		wc := &WebClient{
			client: &http.Client{
				Timeout: 1 * time.Second,
				Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
					return nil, errors.New("network failure")
				}),
			},
			log: logger,
		}

		resp, err := wc.Do(ctx, "http://example.com", http.MethodGet)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("invalid URL", func(t *testing.T) {
		wc := NewWebClient(1*time.Second, logger)

		resp, err := wc.Do(ctx, "http://exa mple.com/", http.MethodGet)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("read body error", func(t *testing.T) {
		wc := &WebClient{
			client: &http.Client{
				Timeout: 1 * time.Second,
				Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: 200,
						Body:       errReadCloser{},
						Header:     make(http.Header),
						Request:    req,
					}, nil
				}),
			},
			log: logger,
		}

		resp, err := wc.Do(ctx, "http://example.com", http.MethodGet)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("header values joined", func(t *testing.T) {
		wc := &WebClient{
			client: &http.Client{
				Timeout: 1 * time.Second,
				Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
					header := make(http.Header)
					header.Add("Vary", "Accept")
					header.Add("Vary", "User-Agent")
					return &http.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader("OK")),
						Header:     header,
						Request:    req,
					}, nil
				}),
			},
			log: logger,
		}

		resp, err := wc.Do(ctx, "http://example.com", http.MethodGet)
		assert.NoError(t, err)
		assert.Equal(t, "Accept, User-Agent", resp.Headers["Vary"])
	})
}

// errReadCloser is an io.ReadCloser that always errors on Read.
type errReadCloser struct{}

func (e errReadCloser) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}
func (e errReadCloser) Close() error {
	return nil
}
