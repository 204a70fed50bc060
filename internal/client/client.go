// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MereWhiplash/wordspace/internal/apitypes"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// Client is an HTTP client for a remote wordspace API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func apiError(resp *http.Response) error {
	var errResp apitypes.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)

	if resp.StatusCode == http.StatusBadRequest {
		msg := strings.TrimPrefix(errResp.Error, types.ErrInvalidRequest.Error()+": ")
		return fmt.Errorf("%w: %s", types.ErrInvalidRequest, msg)
	}
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errResp.Error)
}

// Visualize requests the records for words around centralWord
func (c *Client) Visualize(ctx context.Context, words []string, centralWord string) ([]types.Record, error) {
	req := apitypes.VisualizeRequest{
		Words:       words,
		CentralWord: centralWord,
	}

	resp, err := c.doRequest(ctx, "POST", "/v1/visualize", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result apitypes.VisualizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return []types.Record(result), nil
}

// Health fetches the remote health status
func (c *Client) Health(ctx context.Context) (*apitypes.HealthResponse, error) {
	resp, err := c.doRequest(ctx, "GET", "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result apitypes.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return &result, fmt.Errorf("API unhealthy (status %d): %s", resp.StatusCode, result.Error)
	}

	return &result, nil
}
