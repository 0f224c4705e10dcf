// Package handler exposes the lead HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	enrichsvc "leadsync_backend/internal/enrichment/service"
	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/internal/leads/service"
	"leadsync_backend/internal/leads/transport"
	"leadsync_backend/platform/httpkit"
	"leadsync_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidID        = "invalid lead ID"
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Summarizer produces the enrichment pair for a lead. It never fails; a
// provider problem yields a deterministic fallback.
type Summarizer interface {
	Summarize(ctx context.Context, lead repository.Lead) enrichsvc.Result
}

// Handler handles HTTP requests for leads.
type Handler struct {
	svc        *service.Service
	summarizer Summarizer
	val        *validator.Validator
}

// New creates a new lead handler.
func New(svc *service.Service, summarizer Summarizer, val *validator.Validator) *Handler {
	return &Handler{svc: svc, summarizer: summarizer, val: val}
}

// Create creates a lead manually.
// POST /api/v1/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		City:      req.City,
		Country:   req.Country,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromLead(lead))
}

// List returns all leads, newest first.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	leads, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLeads(leads))
}

// GetByID returns a single lead through the cache-aside read path.
// GET /api/v1/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

// Summarize generates and persists the enrichment pair for a lead.
// POST /api/v1/leads/:id/summarize
func (h *Handler) Summarize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	result := h.summarizer.Summarize(c.Request.Context(), lead)

	if _, err := h.svc.UpdateSummary(c.Request.Context(), id, result.Summary, result.NextAction); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SummarizeResponse{
		Summary:    result.Summary,
		NextAction: result.NextAction,
	})
}
