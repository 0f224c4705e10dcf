package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadsync_backend/platform/config"
	"leadsync_backend/platform/logger"
)

const sampleResponse = `{
	"results": [
		{
			"login": {"uuid": "abc-123"},
			"name": {"first": "Ada", "last": "Lovelace"},
			"email": "ada@example.com",
			"phone": "555-0100",
			"location": {"city": "London", "country": "United Kingdom"}
		},
		{
			"login": {"uuid": "def-456"},
			"name": {"first": "Grace", "last": "Hopper"},
			"email": "grace@example.com",
			"phone": "555-0101",
			"location": {"city": "New York", "country": "United States"}
		}
	]
}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		DirectoryURL:     baseURL,
		DirectoryLocales: "us,gb,au",
		SyncDefaultCount: 10,
		SyncInterval:     time.Hour,
	}
}

func TestFetchParsesRecords(t *testing.T) {
	var gotResults, gotNat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotResults = r.URL.Query().Get("results")
		gotNat = r.URL.Query().Get("nat")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), logger.New("development"))
	records, err := client.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if gotResults != "2" {
		t.Fatalf("expected results=2 query param, got %q", gotResults)
	}
	if gotNat != "us,gb,au" {
		t.Fatalf("expected configured locales, got %q", gotNat)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ExternalID != "abc-123" || first.FirstName != "Ada" || first.Email != "ada@example.com" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.City != "London" || first.Country != "United Kingdom" {
		t.Fatalf("unexpected location mapping: %+v", first)
	}
}

func TestFetchFailsOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(testConfig(server.URL), logger.New("development"))
	if _, err := client.Fetch(context.Background(), 3); err == nil {
		t.Fatal("expected error on non-success status")
	}
}

func TestFetchFailsOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), logger.New("development"))
	if _, err := client.Fetch(context.Background(), 3); err == nil {
		t.Fatal("expected error on malformed body")
	}
}
