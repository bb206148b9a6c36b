package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/types"
)

const (
	defaultBaseURL  = "http://127.0.0.1:8082"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the replay service's session query and search index API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logging.Logger
}

func New(cfg config.CoreConfig, logger logging.Logger) *Client {
	c := NewWithBaseURL(cfg.APIBaseURL(), cfg.APIToken())
	if logger != nil {
		c.logger = logger
	}
	return c
}

func NewWithBaseURL(baseURL, token string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Nop(),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSessions fetches the prefix [0, query.Count) of the server-ordered feed.
func (c *Client) GetSessions(ctx context.Context, query types.SessionsQuery) (*types.SessionResults, error) {
	if err := requireProject(query.ProjectID); err != nil {
		return nil, err
	}
	req := SessionsSearchRequest{
		Params:    query.Params,
		Count:     query.Count,
		Lifecycle: query.Lifecycle,
		Starred:   query.Starred,
	}
	var resp types.SessionResults
	if err := c.doJSON(ctx, http.MethodPost, projectPath(query.ProjectID, "/sessions/search"), req, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []*types.Session{}
	}
	return &resp, nil
}

func (c *Client) UnprocessedSessionsCount(ctx context.Context, projectID string) (int, error) {
	if err := requireProject(projectID); err != nil {
		return 0, err
	}
	var resp UnprocessedSessionsCountResponse
	if err := c.doJSON(ctx, http.MethodGet, projectPath(projectID, "/sessions/unprocessed_count"), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) BillingDetails(ctx context.Context, projectID string) (*types.BillingDetails, error) {
	if err := requireProject(projectID); err != nil {
		return nil, err
	}
	var resp types.BillingDetails
	if err := c.doJSON(ctx, http.MethodGet, projectPath(projectID, "/billing"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Integrated reports whether the project has ever received session data.
func (c *Client) Integrated(ctx context.Context, projectID string) (bool, error) {
	if err := requireProject(projectID); err != nil {
		return false, err
	}
	var resp IntegratedResponse
	if err := c.doJSON(ctx, http.MethodGet, projectPath(projectID, "/integrated"), nil, &resp); err != nil {
		return false, err
	}
	return resp.Integrated, nil
}

func (c *Client) QuickFieldsSearch(ctx context.Context, projectID string, count int, query string) ([]types.QuickSearchOption, error) {
	if err := requireProject(projectID); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("count", strconv.Itoa(count))
	values.Set("query", query)
	path := projectPath(projectID, "/quick_fields") + "?" + values.Encode()
	var resp QuickFieldsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			logging.F("method", method),
			logging.F("path", path),
			logging.F("request_id", requestID),
			logging.F("err", err),
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		logging.F("method", method),
		logging.F("path", path),
		logging.F("status", resp.StatusCode),
		logging.F("request_id", requestID),
		logging.F("duration", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func projectPath(projectID, suffix string) string {
	return "/v1/projects/" + url.PathEscape(strings.TrimSpace(projectID)) + suffix
}

func requireProject(projectID string) error {
	if strings.TrimSpace(projectID) == "" {
		return errors.New("project id is required")
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
