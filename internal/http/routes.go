package http

import (
	"context"

	"seo_audit_engine/internal/adaptors"
	"seo_audit_engine/internal/application/config"
	domain "seo_audit_engine/internal/domain/adaptors"
	"seo_audit_engine/internal/http/handlers"
	"seo_audit_engine/internal/http/middleware"
	"seo_audit_engine/internal/service"
)

func initRoutes(_ context.Context, r *Router, appCfg *config.AppConfig) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	webClient := adaptors.NewWebClient(appCfg.FetchTimeout, r.log)

	// Without an API key the AI-backed checks are skipped, not failed.
	var provider domain.InsightProvider
	if appCfg.AnthropicAPIKey != "" {
		provider = adaptors.NewInsightClient(appCfg.AnthropicAPIKey, r.log)
	} else {
		r.log.Warn(`ANTHROPIC_API_KEY not set, AI-powered checks disabled`)
	}

	engine := service.NewEngine(webClient, provider, r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Post("/audit", handlers.NewAuditHandler(engine, appCfg.APISecret, r.log).Handle)
}
