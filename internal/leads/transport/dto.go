// Package transport defines the HTTP request/response shapes for leads.
package transport

import (
	"time"

	"leadsync_backend/internal/leads/repository"
)

// CreateLeadRequest is the payload for creating a lead manually.
type CreateLeadRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// LeadResponse is the wire representation of a lead.
type LeadResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Company    *string   `json:"company,omitempty"`
	City       *string   `json:"city,omitempty"`
	Country    *string   `json:"country,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	NextAction *string   `json:"nextAction,omitempty"`
	Source     string    `json:"source"`
	ExternalID *string   `json:"externalId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SummarizeResponse carries the enrichment pair back to the caller.
type SummarizeResponse struct {
	Summary    string `json:"summary"`
	NextAction string `json:"next_action"`
}

// FromLead maps a repository lead to its wire representation.
func FromLead(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:         lead.ID.String(),
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Company:    lead.Company,
		City:       lead.City,
		Country:    lead.Country,
		Summary:    lead.Summary,
		NextAction: lead.NextAction,
		Source:     lead.Source,
		ExternalID: lead.ExternalID,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}

// FromLeads maps a slice of repository leads.
func FromLeads(leads []repository.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, FromLead(lead))
	}
	return out
}
