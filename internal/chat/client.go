// Package chat talks to the securebot assistant and keeps the append-only
// conversation log the way the app renders it: a placeholder response per
// question, overwritten when the server replies.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/model"
)

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

type tokenRequest struct {
	Token string `json:"token"`
}

type historyResponse struct {
	Status      bool             `json:"status"`
	ChatHistory []model.ChatTurn `json:"chat_history"`
}

// History returns the server-held conversation, oldest first. A status=false
// answer means no history, not a failure.
func (c *Client) History(ctx context.Context, token string) ([]model.ChatTurn, error) {
	var resp historyResponse
	if err := c.postJSON(ctx, "/getchat_securebot", tokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, nil
	}
	return resp.ChatHistory, nil
}

type queryRequest struct {
	Token string `json:"token"`
	Query string `json:"query"`
}

type queryResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Ask submits a question and returns the assistant's reply text. On a
// status=false answer the server's message doubles as the reply.
func (c *Client) Ask(ctx context.Context, token, query string) (string, error) {
	var resp queryResponse
	if err := c.postJSON(ctx, "/get_response_securebot", queryRequest{Token: token, Query: query}, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" && !resp.Status {
		return "", fmt.Errorf("assistant returned no response")
	}
	return resp.Message, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("chat request failed")
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
