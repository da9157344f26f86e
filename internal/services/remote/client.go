// Package remote reads record listings from the data API over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/models"
)

// ErrUnexpectedStatus is wrapped when the data API answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status from data API")

// Client lists records of the data API: GET {baseURL}/api/{collection}
// answering {"data": [...]}.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New builds a client. token is sent as a bearer token when not empty.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{MaxIdleConnsPerHost: 10},
		},
	}
}

// List fetches every record of kind. Results are never cached.
func (c *Client) List(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	reqURL := fmt.Sprintf("%s/api/%s", c.baseURL, kind.Collection())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, reqURL, resp.StatusCode)
	}

	var body models.ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", kind, err)
	}
	if body.Data == nil {
		body.Data = []models.Record{}
	}
	log.Printf("[REMOTE] fetched %d %s", len(body.Data), kind)
	return body.Data, nil
}
