package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/platform/logger"

	"github.com/google/uuid"
)

type stubClient struct {
	response string
	err      error
}

func (c *stubClient) Complete(context.Context, string, string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func externalLead() repository.Lead {
	return repository.Lead{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Source:    repository.SourceExternal,
	}
}

func assertFallback(t *testing.T, got Result) {
	t.Helper()
	want := Fallback(externalLead())
	if got != want {
		t.Fatalf("expected fallback %+v, got %+v", want, got)
	}
}

func TestSummarizeParsesProviderResponse(t *testing.T) {
	svc := New(&stubClient{response: `{"summary": "Promising lead.", "next_action": "Call tomorrow."}`}, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	if result.Summary != "Promising lead." || result.NextAction != "Call tomorrow." {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSummarizeWithoutProviderUsesFallback(t *testing.T) {
	svc := New(nil, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	assertFallback(t, result)
}

func TestSummarizeFallsBackOnProviderError(t *testing.T) {
	svc := New(&stubClient{err: errors.New("connection timeout")}, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	assertFallback(t, result)
}

func TestSummarizeFallsBackOnMalformedJSON(t *testing.T) {
	svc := New(&stubClient{response: "Sure! Here is the summary you asked for..."}, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	assertFallback(t, result)
}

func TestSummarizeFallsBackOnMissingFields(t *testing.T) {
	svc := New(&stubClient{response: `{"summary": "Promising lead."}`}, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	assertFallback(t, result)
}

func TestSummarizeFallsBackOnEmptyFields(t *testing.T) {
	svc := New(&stubClient{response: `{"summary": "", "next_action": ""}`}, logger.New("development"))

	result := svc.Summarize(context.Background(), externalLead())
	assertFallback(t, result)
}

func TestFallbackIsBuiltFromLeadFields(t *testing.T) {
	result := Fallback(externalLead())

	for _, want := range []string{"Ada", "Lovelace", "external", "ada@example.com"} {
		if !strings.Contains(result.Summary, want) {
			t.Fatalf("fallback summary missing %q: %q", want, result.Summary)
		}
	}
	if result.NextAction != fallbackNextAction {
		t.Fatalf("expected fixed next action, got %q", result.NextAction)
	}
}

func TestPromptRequestsStrictJSON(t *testing.T) {
	prompt := buildPrompt(externalLead())

	if !strings.Contains(prompt, `"summary"`) || !strings.Contains(prompt, `"next_action"`) {
		t.Fatalf("prompt must request the JSON shape: %s", prompt)
	}
	if !strings.Contains(prompt, "Not provided") {
		t.Fatal("prompt must mark absent optional fields")
	}
}
