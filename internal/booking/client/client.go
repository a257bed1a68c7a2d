// Package client submits booking leads to the contact endpoint over HTTP.
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

	"drishti_backend/internal/booking"
)

const contactPath = "/api/contact"

// Client posts leads to a running API. It satisfies wizard.Submitter.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx answer from the endpoint.
type StatusError struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned status %d", e.Status)
	}
	return fmt.Sprintf("contact endpoint returned status %d: %s", e.Status, e.Message)
}

// FieldErrors returns the per-field messages of a 400 answer, or nil.
func (e *StatusError) FieldErrors() booking.FieldErrors {
	if e.Status != http.StatusBadRequest || len(e.Details) == 0 {
		return nil
	}
	out := make(booking.FieldErrors, len(e.Details))
	for field, msg := range e.Details {
		out[booking.Field(field)] = msg
	}
	return out
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// Submit sends lead once. Any transport failure or non-2xx status is an
// error; nothing is retried.
func (c *Client) Submit(ctx context.Context, lead booking.Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contactPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit lead: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	statusErr := &StatusError{Status: resp.StatusCode}
	var eb errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb); err == nil {
		statusErr.Message = eb.Error
		statusErr.Details = eb.Details
	}
	return statusErr
}
