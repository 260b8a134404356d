// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the workspace backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/genailakes/workspace-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request, including queries that hit a
	// slow model on the backend.
	DefaultTimeout = 60 * time.Second

	// retryBaseDelay is the delay before the single retry of an
	// idempotent request. A random jitter of up to the same amount is
	// added so concurrent clients do not re-hit the backend in step.
	retryBaseDelay = 500 * time.Millisecond

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB limit
)

// DefaultSyncNotice is shown when the backend acknowledges a sync without
// a message of its own.
const DefaultSyncNotice = "Sync request sent."

// sharedHTTPClient pools connections across all backend requests.
// Per-request deadlines come from the context, not the client.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// ErrEmptyQuery indicates a query was empty after trimming whitespace.
// It is rejected before any I/O happens.
var ErrEmptyQuery = errors.New("query is empty")

// APIError is a non-2xx response from the backend, carrying whatever
// reason the backend supplied or the bare status as a fallback.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
}

// Reason returns the user-facing failure text: the backend's message when
// it sent one, otherwise "HTTP <status>".
func (e *APIError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the workspace backend. Queries are never retried: they
// are not idempotent and a duplicate submission would double-process.
// Health and sync GETs get one retry with jitter, gated by a rate limiter
// so a stuck key cannot hammer the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// New creates a client for the given backend address.
func New(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		logger:     logger,
	}
}

// WithTimeout sets the per-request deadline.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// WithBaseURL sets a custom backend address.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

// QueryResult is a successful backend reply.
type QueryResult struct {
	Response      string
	SearchResults []model.SearchResult
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response      string               `json:"response"`
	SearchResults []model.SearchResult `json:"searchResults"`
}

// Query submits a user query to the mode's endpoint and returns the
// backend's reply. Empty queries are rejected with ErrEmptyQuery before
// any network traffic. Search results are only honored in search mode;
// other modes drop them even if the backend sends some.
//
// Failures come back as *APIError (backend said no) or a transport error
// (backend unreachable, deadline exceeded, context cancelled). The caller
// turns either into an error message in the transcript.
func (c *Client) Query(ctx context.Context, mode model.Mode, query string) (*QueryResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	bodyBytes, err := json.Marshal(queryRequest{Query: trimmed})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/" + mode.EndpointPath()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.errorFromBody(status, body)
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	result := &QueryResult{Response: resp.Response}
	if mode == model.ModeSearch {
		result.SearchResults = resp.SearchResults
	}
	return result, nil
}

// =============================================================================
// IDEMPOTENT ENDPOINTS
// =============================================================================

// Health probes the backend. The result is for logging; a dead backend
// must not block the session.
func (c *Client) Health(ctx context.Context) error {
	body, status, err := c.getWithRetry(ctx, "/health")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return c.errorFromBody(status, body)
	}
	return nil
}

type syncResponse struct {
	Message string `json:"message"`
}

// Sync asks the backend to refresh its data sources. Returns the
// backend's acknowledgement text, or DefaultSyncNotice when the backend
// acknowledged silently.
func (c *Client) Sync(ctx context.Context) (string, error) {
	body, status, err := c.getWithRetry(ctx, "/sync")
	if err != nil {
		return "", err
	}

	var resp syncResponse
	// The message field is optional either way; a bare 200 is a valid ack.
	_ = json.Unmarshal(body, &resp)

	if status < 200 || status >= 300 {
		return "", &APIError{Status: status, Message: resp.Message}
	}
	if resp.Message == "" {
		return DefaultSyncNotice, nil
	}
	return resp.Message, nil
}

// Reminders fetches the backend's scheduled reminder jobs.
func (c *Client) Reminders(ctx context.Context) ([]model.Reminder, error) {
	body, status, err := c.getWithRetry(ctx, "/reminders")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, c.errorFromBody(status, body)
	}

	var reminders []model.Reminder
	if err := json.Unmarshal(body, &reminders); err != nil {
		return nil, fmt.Errorf("failed to parse reminders: %w", err)
	}
	return reminders, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do executes a request and returns the size-limited body and status.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, duration)

	body, err := readResponse(resp)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// getWithRetry performs a GET with one jittered retry. Only idempotent
// endpoints go through here; queries never do. Context cancellation and
// deadline expiry are not retried.
func (c *Client) getWithRetry(ctx context.Context, path string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(jitteredDelay()):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		body, status, err := c.do(req)
		if err == nil && status < 500 {
			return body, status, nil
		}

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, 0, err
			}
			lastErr = err
		} else {
			lastErr = &APIError{Status: status, Message: extractReason(body)}
		}
	}
	return nil, 0, fmt.Errorf("retries exhausted: %w", lastErr)
}

// jitteredDelay spreads retries of concurrent clients apart.
func jitteredDelay() time.Duration {
	return retryBaseDelay + time.Duration(rand.Int63n(int64(retryBaseDelay)))
}

// readResponse reads the body with a size cap so a misbehaving backend
// cannot exhaust memory.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// errorFromBody builds an APIError from a non-2xx body. The backend
// reports failures in the same {response} shape as successes.
func (c *Client) errorFromBody(status int, body []byte) error {
	return &APIError{Status: status, Message: extractReason(body)}
}

// extractReason pulls the backend's failure text out of an error body,
// or "" when the body is not in the expected shape.
func extractReason(body []byte) string {
	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		return resp.Response
	}
	return ""
}

// logRequest logs method and path only. Bodies carry user content and
// are never logged.
func (c *Client) logRequest(req *http.Request) {
	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path))
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	c.logger.Debug("api response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))
}
