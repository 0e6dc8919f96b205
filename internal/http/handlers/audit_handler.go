package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"seo_audit_engine/internal/pkg/errors"
	"seo_audit_engine/internal/service"

	log "github.com/sirupsen/logrus"
)

// blockedHosts are never audited, together with the RFC1918 prefixes below.
var blockedHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
}

var privatePrefixes = []string{"10.", "192.168.", "172.16."}

type AuditHandler struct {
	engine    *service.Engine
	apiSecret string
	log       *log.Logger
}

type AuditRequest struct {
	URL           string `json:"url"`
	CompetitorURL string `json:"competitor_url,omitempty"`
}

func (r *AuditRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url is empty")
	}
	if err := validateTarget(r.URL); err != nil {
		return err
	}
	if r.CompetitorURL != "" {
		if err := validateTarget(r.CompetitorURL); err != nil {
			return errors.Wrap(err, `competitor url invalid`)
		}
	}
	return nil
}

func validateTarget(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(err, `failed to parse url`)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("url is invalid")
	}

	host := parsed.Hostname()
	if blockedHosts[host] {
		return errors.New("private/local URLs not allowed")
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(host, prefix) {
			return errors.New("private/local URLs not allowed")
		}
	}
	return nil
}

func NewAuditHandler(engine *service.Engine, apiSecret string, log *log.Logger) *AuditHandler {
	return &AuditHandler{
		engine:    engine,
		apiSecret: apiSecret,
		log:       log,
	}
}

func (h *AuditHandler) Handle(w http.ResponseWriter, r *http.Request) {

	h.log.Debug(`audit handler called`)

	if h.apiSecret != "" && r.Header.Get(`X-API-Key`) != h.apiSecret {
		sendError(w, `invalid api key`, errors.New(`invalid api key`), http.StatusUnauthorized)
		return
	}

	var request AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `failed to decode request body`, err, http.StatusBadRequest)
		return
	}

	if err := request.Validate(); err != nil {
		h.log.WithError(err).Error(`failed to validate request body`)
		sendError(w, `failed to validate request body`, err, http.StatusBadRequest)
		return
	}

	result := h.engine.RunAudit(r.Context(), request.URL, request.CompetitorURL, nil)

	w.Header().Set(`Content-Type`, `application/json`)
	// A failed primary fetch is the one error that reaches the caller.
	if result.Error != "" {
		w.WriteHeader(http.StatusBadGateway)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
