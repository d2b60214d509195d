package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/mystic-backend/internal/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(config.ChatConfig{BaseURL: url + "/v1/", Timeout: timeout})
}

func TestChatCompletionSendsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.JSONEq(t, `{"role":"user","content":"hi"}`, string(req.Messages[0]))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}},{"message":{"content":"second"}}]}`))
	}))
	defer server.Close()

	content, err := newTestClient(server.URL, 5*time.Second).ChatCompletion(context.Background(), "sk-test", ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []json.RawMessage{json.RawMessage(`{"role":"user","content":"hi"}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", content)
}

func TestChatCompletionRelaysMessagesVerbatim(t *testing.T) {
	messages := []string{
		`{"role":"system","content":"You are <kind> & brief."}`,
		`{"role":"user","content":"hi","name":"bob"}`,
		`{"role":"user","content":[{"type":"text","text":"what does 7 mean?"}]}`,
	}

	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	req := ChatRequest{Model: "gpt-4o-mini"}
	for _, m := range messages {
		req.Messages = append(req.Messages, json.RawMessage(m))
	}

	_, err := newTestClient(server.URL, 5*time.Second).ChatCompletion(context.Background(), "k", req)
	require.NoError(t, err)

	want := `{"model":"gpt-4o-mini","messages":[` + strings.Join(messages, ",") + "]}\n"
	assert.Equal(t, want, string(body))
}

func TestChatCompletionMissingContentIsEmpty(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"choices":[]}`,
		`{"choices":[{}]}`,
		`{"choices":[{"message":{}}]}`,
		`{"choices":[{"message":{"content":null}}]}`,
		`{"choices":[{"message":{"content":42}}]}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			content, err := newTestClient(server.URL, 5*time.Second).ChatCompletion(context.Background(), "k", ChatRequest{})
			require.NoError(t, err)
			assert.Empty(t, content)
		})
	}
}

func TestChatCompletionStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).ChatCompletion(context.Background(), "k", ChatRequest{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "rate limited")
}

func TestChatCompletionInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second).ChatCompletion(context.Background(), "k", ChatRequest{})
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestChatCompletionTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestClient(server.URL, 50*time.Millisecond).ChatCompletion(context.Background(), "k", ChatRequest{})
	assert.Error(t, err)
}
