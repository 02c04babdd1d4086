// Package client is a typed Go client for the CineReserve API. It wraps the
// HTTP surface in domain operations, classifies failures into error kinds,
// and implements the seat selection workflow with its conflict handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
	user  *User
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
// The /api/v1 prefix is appended internally.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

// errorDetails carries the machine-readable part of an error envelope.
type errorDetails struct {
	Code               string      `json:"code"`
	ConflictingSeatIDs []uuid.UUID `json:"conflictingSeatIds"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return newError(KindInternal, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return newError(KindInternal, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return newError(KindInternal, fmt.Sprintf("decode response: %v", err))
	}

	if resp.StatusCode >= 400 {
		return c.toError(resp.StatusCode, &env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return newError(KindInternal, fmt.Sprintf("decode data: %v", err))
		}
	}
	return nil
}

// toError maps an HTTP failure to a classified client error. A 401 also
// drops the stored credentials so the next call starts unauthenticated.
func (c *Client) toError(statusCode int, env *envelope) *Error {
	var details errorDetails
	if len(env.Errors) > 0 {
		_ = json.Unmarshal(env.Errors, &details)
	}

	kind := KindInternal
	switch statusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthenticated
		c.clearIdentity()
	case http.StatusForbidden:
		kind = KindUnauthorized
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusConflict:
		if details.Code == "INVALID_STATE" {
			kind = KindInvalidState
		} else {
			kind = KindConflict
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = KindValidation
	}

	return &Error{
		Kind:               kind,
		Message:            env.Message,
		ConflictingSeatIDs: details.ConflictingSeatIDs,
	}
}

// Token returns the bearer token for the current session, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setIdentity(token string, user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.user = user
}

func (c *Client) clearIdentity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = nil
}
