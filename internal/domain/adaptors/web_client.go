package adaptors

import "context"

// WebResponse is the transport-level outcome of one outbound request.
type WebResponse struct {
	Body          []byte
	StatusCode    int
	FinalURL      string
	Headers       map[string]string
	RedirectChain []string
}

type WebClient interface {
	Do(ctx context.Context, url string, method string) (*WebResponse, error)
}
