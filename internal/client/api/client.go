// FILE: internal/client/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chess/internal/client/display"
	"chess/internal/core"
)

// Error is a non-2xx answer from the server
type Error struct {
	Status int
	core.ErrorResponse
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d %s (%s): %s", e.Status, e.ErrorResponse.Error, e.Code, e.Details)
	}
	return fmt.Sprintf("%d %s (%s)", e.Status, e.ErrorResponse.Error, e.Code)
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Games   int    `json:"games"`
	Storage string `json:"storage,omitempty"`
}

type Client struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	Verbose    bool
	Output     io.Writer // request trace, nil to disable
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Longer than the server's long-poll window
			Timeout: 40 * time.Second,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) SetToken(token string) {
	c.AuthToken = token
}

func (c *Client) tracef(format string, args ...any) {
	if c.Output != nil {
		fmt.Fprintf(c.Output, format, args...)
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	var bodyData []byte
	if body != nil {
		var err error
		if bodyData, err = json.Marshal(body); err != nil {
			return err
		}
		bodyReader = bytes.NewReader(bodyData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	c.tracef("%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if c.Verbose && len(bodyData) > 0 {
		c.tracef("%sRequest Body:%s\n%s\n", display.Cyan, display.Reset, indent(bodyData))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	c.tracef("%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)
	if c.Verbose && len(respBody) > 0 {
		c.tracef("%sResponse Body:%s\n%s\n", display.Cyan, display.Reset, indent(respBody))
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.ErrorResponse); err != nil {
			apiErr.ErrorResponse.Error = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("response parse error: %w", err)
		}
	}
	return nil
}

func indent(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

// API Methods

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(ctx context.Context, req core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/games/"+url.PathEscape(gameID), nil, &resp)
	return &resp, err
}

// WaitForMove long-polls until the game has moved past moveCount or the server times out
func (c *Client) WaitForMove(ctx context.Context, gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("/api/v1/games/%s/wait?moveCount=%d", url.PathEscape(gameID), moveCount)
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(ctx context.Context, gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/games/"+url.PathEscape(gameID)+"/board", nil, &resp)
	return &resp, err
}

func (c *Client) Candidates(ctx context.Context, gameID, square string) (*core.CandidatesResponse, error) {
	var resp core.CandidatesResponse
	path := "/api/v1/games/" + url.PathEscape(gameID) + "/moves?square=" + url.QueryEscape(square)
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	return &resp, err
}

// MakeMove plays a move with the seat token set by SetToken
func (c *Client) MakeMove(ctx context.Context, gameID string, req core.MoveRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/games/"+url.PathEscape(gameID)+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/v1/games/"+url.PathEscape(gameID), nil, nil)
}

// RawRequest performs a raw HTTP request for debugging purposes
func (c *Client) RawRequest(ctx context.Context, method, path string, body string) (json.RawMessage, error) {
	var bodyData any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			// Send as a JSON string
			bodyData = body
		}
	}

	var raw json.RawMessage
	err := c.doRequest(ctx, method, path, bodyData, &raw)
	return raw, err
}
