package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadsync_backend/platform/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AIAPIKey:  "test-key",
		AIBaseURL: baseURL,
		AIModel:   "gpt-3.5-turbo",
	}
}

func TestCompleteSendsFixedParameters(t *testing.T) {
	var got chatRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "hello"}}]}`))
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	text, err := c.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if text != "hello" {
		t.Fatalf("unexpected completion text: %q", text)
	}

	if auth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if got.Model != "gpt-3.5-turbo" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if got.Temperature != completionTemperature || got.MaxTokens != completionMaxTokens {
		t.Fatalf("sampling parameters must be fixed, got temp=%v max_tokens=%d", got.Temperature, got.MaxTokens)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestCompleteFailsOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	if _, err := c.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestCompleteFailsOnBlankContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	if _, err := c.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error on blank completion")
	}
}

func TestCompleteFailsOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	if _, err := c.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
