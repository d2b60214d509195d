// Package openai is a minimal client for OpenAI-compatible chat-completion APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/deppfellow/mystic-backend/internal/config"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxErrorBody bounds how much of a failed upstream response is kept for logging.
const maxErrorBody = 64 << 10

// ChatRequest is the upstream request body. Messages are relayed as the caller
// sent them, so extra keys and array content reach the upstream untouched.
type ChatRequest struct {
	Model    string            `json:"model"`
	Messages []json.RawMessage `json:"messages"`
}

// StatusError is returned when the upstream answers with anything but 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat upstream returned status %d", e.StatusCode)
}

// Client talks to {BaseURL}/chat/completions.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient builds a client from the chat config. The configured timeout bounds
// each call as a whole, including reading the body.
func NewClient(cfg config.ChatConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
	}
}

// ChatCompletion sends req with the given bearer credential and returns the
// content of the first choice.
//
// A missing or non-string content yields "" without an error. A non-200
// response yields a *StatusError; transport failures and non-JSON success
// bodies yield plain wrapped errors.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, req ChatRequest) (string, error) {
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return "", errors.Wrap(err, "failed to marshal chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to create chat request")
	}

	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "chat request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read chat response")
	}

	if !gjson.ValidBytes(body) {
		return "", errors.New("chat response is not valid JSON")
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", nil
	}

	return content.Str, nil
}
