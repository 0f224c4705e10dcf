// Package service produces a summary and recommended next action for a lead.
// Provider failures never escape: any error collapses into a deterministic
// fallback computed from the lead's own fields.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/platform/logger"
)

const systemPrompt = "You are a sales assistant that analyzes leads and provides actionable insights. " +
	"Always respond with valid JSON only."

const fallbackNextAction = "Review lead information and schedule an initial contact via email."

// Result is the structured enrichment pair.
type Result struct {
	Summary    string
	NextAction string
}

// CompletionClient abstracts the chat completions provider.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service generates lead summaries. A nil client means the provider is not
// configured; every lead then gets the fallback.
type Service struct {
	client CompletionClient
	log    *logger.Logger
}

// New creates a new enrichment service.
func New(client CompletionClient, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Summarize builds the lead analysis prompt, calls the completion provider
// and parses its strict-JSON answer. On any failure it returns Fallback; an
// error never crosses this boundary.
func (s *Service) Summarize(ctx context.Context, lead repository.Lead) Result {
	s.log.Info("generating lead summary", "lead_id", lead.ID)

	if s.client == nil {
		s.log.Warn("enrichment provider not configured, using fallback", "lead_id", lead.ID)
		return Fallback(lead)
	}

	text, err := s.client.Complete(ctx, systemPrompt, buildPrompt(lead))
	if err != nil {
		s.log.Warn("enrichment failed, using fallback", "lead_id", lead.ID, "error", err)
		return Fallback(lead)
	}

	var parsed struct {
		Summary    string `json:"summary"`
		NextAction string `json:"next_action"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		s.log.Warn("enrichment response is not valid JSON, using fallback", "lead_id", lead.ID, "error", err)
		return Fallback(lead)
	}
	if parsed.Summary == "" || parsed.NextAction == "" {
		s.log.Warn("enrichment response missing fields, using fallback", "lead_id", lead.ID)
		return Fallback(lead)
	}

	return Result{Summary: parsed.Summary, NextAction: parsed.NextAction}
}

// Fallback is the deterministic substitute computed only from lead fields.
func Fallback(lead repository.Lead) Result {
	return Result{
		Summary: fmt.Sprintf("Lead %s %s from %s source. Contact: %s.",
			lead.FirstName, lead.LastName, lead.Source, lead.Email),
		NextAction: fallbackNextAction,
	}
}

func buildPrompt(lead repository.Lead) string {
	var b strings.Builder
	b.WriteString("Analyze the following lead information and provide a brief summary and a recommended next action.\n\n")
	b.WriteString("Lead Information:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", lead.FirstName, lead.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", orNotProvided(lead.Phone))
	fmt.Fprintf(&b, "- Company: %s\n", orNotProvided(lead.Company))
	fmt.Fprintf(&b, "- City: %s\n", orNotProvided(lead.City))
	fmt.Fprintf(&b, "- Country: %s\n", orNotProvided(lead.Country))
	fmt.Fprintf(&b, "- Source: %s\n", lead.Source)
	fmt.Fprintf(&b, "- Created: %s\n", lead.CreatedAt.Format("2006-01-02"))
	b.WriteString("\nRespond ONLY with a valid JSON object in this exact format:\n")
	b.WriteString(`{"summary": "A brief 2-3 sentence summary of this lead", ` +
		`"next_action": "A specific recommended next action to take with this lead"}`)
	return b.String()
}

func orNotProvided(value *string) string {
	if value == nil || *value == "" {
		return "Not provided"
	}
	return *value
}
