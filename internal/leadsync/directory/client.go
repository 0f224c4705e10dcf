// Package directory provides the HTTP client for the external directory of
// candidate contacts.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leadsync_backend/platform/config"
	"leadsync_backend/platform/logger"
)

const defaultHTTPTimeout = 15 * time.Second

// Record is a candidate contact returned by the directory.
type Record struct {
	ExternalID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	City       string
	Country    string
}

type wireResponse struct {
	Results []struct {
		Login struct {
			UUID string `json:"uuid"`
		} `json:"login"`
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location struct {
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"location"`
	} `json:"results"`
}

// Client fetches candidate contacts from the directory provider.
type Client struct {
	baseURL    string
	locales    string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a directory client from the sync configuration.
func New(cfg config.SyncConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.GetDirectoryURL(),
		locales:    cfg.GetDirectoryLocales(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// Fetch requests count candidate records filtered to the configured locales.
// A non-success response fails the whole call; there is no partial result.
func (c *Client) Fetch(ctx context.Context, count int) ([]Record, error) {
	params := url.Values{}
	params.Set("results", strconv.Itoa(count))
	params.Set("nat", c.locales)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("directory request failed: status %d", resp.StatusCode)
	}

	var payload wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	records := make([]Record, 0, len(payload.Results))
	for _, result := range payload.Results {
		records = append(records, Record{
			ExternalID: result.Login.UUID,
			FirstName:  result.Name.First,
			LastName:   result.Name.Last,
			Email:      result.Email,
			Phone:      result.Phone,
			City:       result.Location.City,
			Country:    result.Location.Country,
		})
	}

	return records, nil
}
