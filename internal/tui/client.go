package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 10 * time.Second

// manages HTTP requests to the admin REST API
type AdminClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new admin REST client from the environment
func NewAdminClient() *AdminClient {
	endpoint := os.Getenv("SVGFORGE_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &AdminClient{
		endpoint: endpoint,
		token:    os.Getenv("SVGFORGE_ADMIN_TOKEN"),
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// fetches the account listing as a bubbletea command
func (c *AdminClient) FetchAccounts() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/v1/admin/accounts", nil)
		if err != nil {
			return errorMsg{err: err}
		}

		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errorMsg{err: err}
		}
		defer resp.Body.Close() //nolint:errcheck,gosec // best-effort cleanup

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return errorMsg{err: err}
		}

		if resp.StatusCode != http.StatusOK {
			return errorMsg{err: fmt.Errorf("admin API returned status %d: %s", resp.StatusCode, body)}
		}

		var parsed listResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return errorMsg{err: fmt.Errorf("failed to decode admin response: %w", err)}
		}

		return accountsMsg{accounts: parsed.Accounts}
	}
}
