// Package generator is the outbound client for the hosted image-generation
// provider. The generation models themselves are the provider's problem;
// this package only submits jobs and returns artifact URLs.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// shared HTTP client for provider API calls
var providerHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for provider API calls (10 requests/second with burst capacity of 5)
var providerRateLimiter = rate.NewLimiter(10, 5)

// Client talks to the generation provider's HTTP API
type Client struct {
	endpoint   string
	apiToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// creates a new generation provider client
func NewClient(endpoint, apiToken string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiToken:   apiToken,
		httpClient: providerHTTPClient,
		limiter:    providerRateLimiter,
	}
}

type providerResponse struct {
	Output []string `json:"output"`
	Model  string   `json:"model"`
	Error  string   `json:"error,omitempty"`
}

// submits one generation job and waits for the artifact URL
func (c *Client) Generate(ctx context.Context, req Request) (*Artifact, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck,gosec // best-effort cleanup

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed providerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if parsed.Error != "" {
		return nil, fmt.Errorf("provider error: %s", parsed.Error)
	}

	if len(parsed.Output) == 0 {
		return nil, fmt.Errorf("provider returned no output")
	}

	return &Artifact{
		URL:   parsed.Output[0],
		Model: parsed.Model,
	}, nil
}
