// Package client is the HTTP counterpart of the registration endpoint: a
// small JSON client the form controller submits through.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"regdesk/internal/registration/models"
)

// Client posts registrations to a regdesk server.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(c *Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New constructs a Client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register submits one registration. Any transport problem, including a body
// that is not the expected JSON envelope, is returned as an error; the caller
// shows its generic fallback and never inspects the details.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("encode register request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("build register request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("post register: %w", err)
	}
	defer httpResp.Body.Close()

	// Handled outcomes are always 2xx; anything else came from a proxy or a
	// broken server, and its body is not our envelope even when it is JSON.
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return models.RegisterResponse{}, fmt.Errorf("register: unexpected status %d", httpResp.StatusCode)
	}

	var resp models.RegisterResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return models.RegisterResponse{}, fmt.Errorf("decode register response: %w", err)
	}
	return resp, nil
}
