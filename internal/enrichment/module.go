// Package enrichment provides the composition root for AI lead enrichment.
package enrichment

import (
	"leadsync_backend/internal/enrichment/client"
	"leadsync_backend/internal/enrichment/service"
	"leadsync_backend/platform/config"
	"leadsync_backend/platform/logger"
)

// Module wires the enrichment service.
type Module struct {
	service *service.Service
}

// NewModule creates a new enrichment module. Without an API key the provider
// client is not constructed and every summary is the deterministic fallback.
func NewModule(cfg config.AIConfig, log *logger.Logger) *Module {
	var cli service.CompletionClient
	if cfg.IsAIEnabled() {
		cli = client.New(cfg)
	} else {
		log.Warn("AI enrichment disabled, summaries will use the fallback")
	}
	return &Module{service: service.New(cli, log)}
}

// Service returns the enrichment service.
func (m *Module) Service() *service.Service {
	return m.service
}
