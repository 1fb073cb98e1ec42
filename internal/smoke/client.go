package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/squads/internal/adapters/ingest"
	"github.com/okian/squads/internal/domain/model"
)

// HTTPClient wraps http.Client with the squads routes.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// Health checks GET /healthz.
func (c *HTTPClient) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz", "", http.NoBody)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("healthz returned %d", status)
	}
	return nil
}

// UploadRoster posts r as CSV and returns the server's ranked copy.
func (c *HTTPClient) UploadRoster(ctx context.Context, r model.Roster) (model.Roster, error) {
	var buf bytes.Buffer
	if err := ingest.WriteCSV(&buf, r, ingest.DefaultDelimiter); err != nil {
		return model.Roster{}, err
	}
	status, data, err := c.do(ctx, http.MethodPost, "/roster", "text/csv", &buf)
	if err != nil {
		return model.Roster{}, err
	}
	if status != http.StatusCreated {
		return model.Roster{}, fmt.Errorf("roster upload returned %d: %s", status, data)
	}
	var ranked model.Roster
	if err := json.Unmarshal(data, &ranked); err != nil {
		return model.Roster{}, fmt.Errorf("failed to decode roster: %w", err)
	}
	return ranked, nil
}

// teamsResponse is the subset of POST /teams the checker needs.
type teamsResponse struct {
	PlanID string `json:"plan_id"`
	Plan   struct {
		TeamCount int `json:"team_count"`
		Remainder int `json:"remainder"`
	} `json:"plan"`
	Teams []model.Team `json:"teams"`
}

// GenerateTeams posts a team request. It returns the HTTP status so callers
// can tell a refused plan from a transport failure.
func (c *HTTPClient) GenerateTeams(ctx context.Context, size int, sortBy string) (int, teamsResponse, error) {
	body, err := json.Marshal(map[string]any{"team_size": size, "sort_by": sortBy})
	if err != nil {
		return 0, teamsResponse{}, err
	}
	status, data, err := c.do(ctx, http.MethodPost, "/teams", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, teamsResponse{}, err
	}
	var res teamsResponse
	if status == http.StatusCreated {
		if err := json.Unmarshal(data, &res); err != nil {
			return status, teamsResponse{}, fmt.Errorf("failed to decode teams: %w", err)
		}
	}
	return status, res, nil
}
