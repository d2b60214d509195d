package service

import (
	"context"
	"strings"

	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type HoroscopeRequest struct {
	Sign string `json:"sign" validate:"required"`
}

func (r *HoroscopeRequest) Normalize() {
	r.Sign = strings.TrimSpace(r.Sign)
}

func (r *HoroscopeRequest) Validate() error {
	return validation.Check(r, "Sign required")
}

type Horoscope struct {
	Daily   string `json:"daily"`
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`
	Yearly  string `json:"yearly"`
}

type HoroscopeResponse struct {
	Horoscope Horoscope `json:"horoscope"`
}

// HoroscopeService renders placeholder readings until a real content feed exists.
type HoroscopeService struct {
	server *server.Server
}

func NewHoroscopeService(s *server.Server) *HoroscopeService {
	return &HoroscopeService{server: s}
}

func (s *HoroscopeService) Read(_ context.Context, req *HoroscopeRequest) (*HoroscopeResponse, error) {
	// Casers keep state and must not be shared between goroutines.
	sign := cases.Title(language.Und).String(req.Sign)

	return &HoroscopeResponse{
		Horoscope: Horoscope{
			Daily:   sign + ": Stay open to small shifts today.",
			Weekly:  sign + ": Clear one lingering task this week.",
			Monthly: sign + ": Balance ambition with rest this month.",
			Yearly:  sign + ": Build steadily; focus on one key theme this year.",
		},
	}, nil
}
