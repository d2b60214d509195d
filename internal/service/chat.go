package service

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/deppfellow/mystic-backend/internal/lib/openai"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ChatRequest carries the conversation as raw JSON messages; each one is
// forwarded exactly as received.
type ChatRequest struct {
	Messages []json.RawMessage `json:"messages" validate:"required,min=1"`
	Model    string            `json:"model"`
}

func (r *ChatRequest) Validate() error {
	return validation.Check(r, "No messages provided")
}

type ChatMessage struct {
	Content string `json:"content"`
}

type ChatResponse struct {
	Message ChatMessage `json:"message"`
}

// ChatService relays a conversation to the upstream chat-completion API.
type ChatService struct {
	server *server.Server
	getenv func(string) string
}

// NewChatService creates the service. getenv resolves the upstream credential
// on every call, so rotating it needs no restart.
func NewChatService(s *server.Server, getenv func(string) string) *ChatService {
	return &ChatService{
		server: s,
		getenv: getenv,
	}
}

func (s *ChatService) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	logger := zerolog.Ctx(ctx)
	cfg := s.server.Config.Chat

	apiKey := s.getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, errs.NewMisconfiguredError(cfg.APIKeyEnv + " not set")
	}

	model := req.Model
	if model == "" {
		model = cfg.DefaultModel
	}

	content, err := s.server.Chat.ChatCompletion(ctx, apiKey, openai.ChatRequest{
		Model:    model,
		Messages: req.Messages,
	})
	if err != nil {
		var statusErr *openai.StatusError
		if errors.As(err, &statusErr) {
			logger.Error().
				Int("upstream_status", statusErr.StatusCode).
				Str("upstream_body", statusErr.Body).
				Str("model", model).
				Msg("chat upstream error")
			return nil, errs.NewBadGatewayError("Chat upstream error")
		}

		return nil, errors.Wrap(err, "chat completion failed")
	}

	logger.Debug().
		Str("model", model).
		Int("messages", len(req.Messages)).
		Msg("chat completion relayed")

	return &ChatResponse{Message: ChatMessage{Content: content}}, nil
}

// Configured reports whether the upstream credential is currently set.
func (s *ChatService) Configured() bool {
	return s.getenv(s.server.Config.Chat.APIKeyEnv) != ""
}
