package leadsync

import (
	apphttp "leadsync_backend/internal/http"
)

// Module is the HTTP-facing side of the sync bounded context.
type Module struct {
	handler *Handler
}

// NewModule creates the sync module around an enqueuer.
func NewModule(enqueuer Enqueuer, defaultCount int) *Module {
	return &Module{handler: NewHandler(enqueuer, defaultCount)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sync"
}

// RegisterRoutes mounts the sync trigger on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/sync/trigger", m.handler.TriggerSync)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
