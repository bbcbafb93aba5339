// Package api is the typed client for the SecureSpot business API. Every
// call is stateless and at-most-once: validation happens before the request,
// business failures carry the server's message verbatim, and transport
// failures are logged in detail but surfaced generically. Nothing retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Error is a business failure: the call succeeded at the transport level but
// the server answered status=false. Its message is safe to show verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsBusiness reports whether err is a server-reported business failure as
// opposed to a transport problem.
func IsBusiness(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// postJSON issues a POST with a JSON body and decodes the response into out.
// A nil body sends an empty POST, which the path-parameter endpoints expect.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().
			Str("requestId", requestID).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Err(err).
			Msg("api request failed")
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("requestId", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// businessErr turns a status=false envelope into an *Error, substituting a
// fallback when the server sent no message.
func businessErr(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &Error{Message: message}
}
