// Package leads provides the lead management bounded context: manual
// creation, cache-aside reads, and the deduplication gate used by imports.
package leads

import (
	"time"

	apphttp "leadsync_backend/internal/http"
	"leadsync_backend/internal/leads/cache"
	"leadsync_backend/internal/leads/handler"
	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/internal/leads/service"
	"leadsync_backend/platform/logger"
	"leadsync_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration, summarizer handler.Summarizer, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	leadCache := cache.New(redisClient, cacheTTL, log)
	svc := service.New(repo, leadCache, log)
	h := handler.New(svc, summarizer, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
// Listing is open; every other operation requires the API key.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/leads", m.handler.List)

	ctx.Protected.POST("/leads", m.handler.Create)
	ctx.Protected.GET("/leads/:id", m.handler.GetByID)
	ctx.Protected.POST("/leads/:id/summarize", m.handler.Summarize)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
