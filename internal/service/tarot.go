package service

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/mystic-backend/internal/server"
)

const tarotNotes = "Tarot interpretations can be served from backend if desired."

var (
	defaultIntent = json.RawMessage(`"general"`)
	defaultSpread = json.RawMessage(`"Daily"`)
)

// TarotRequest keeps intent and spread as raw JSON so any value, null
// included, is echoed back untouched.
type TarotRequest struct {
	Intent json.RawMessage `json:"intent"`
	Spread json.RawMessage `json:"spread"`
}

// Normalize fills in absent keys. An explicit null is present and stays null.
func (r *TarotRequest) Normalize() {
	if r.Intent == nil {
		r.Intent = defaultIntent
	}
	if r.Spread == nil {
		r.Spread = defaultSpread
	}
}

func (r *TarotRequest) Validate() error {
	return nil
}

type TarotResponse struct {
	Intent json.RawMessage `json:"intent"`
	Spread json.RawMessage `json:"spread"`
	Notes  string          `json:"notes"`
}

type TarotService struct {
	server *server.Server
}

func NewTarotService(s *server.Server) *TarotService {
	return &TarotService{server: s}
}

func (s *TarotService) Draw(_ context.Context, req *TarotRequest) (*TarotResponse, error) {
	return &TarotResponse{
		Intent: req.Intent,
		Spread: req.Spread,
		Notes:  tarotNotes,
	}, nil
}
