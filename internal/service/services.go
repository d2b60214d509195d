// Package service contains the business logic.
//
// It sits between the handler layer and the domain packages
// (numerology, zodiac) or the upstream chat API. It receives
// validated data from the handler and performs the operation.
// Request and response payloads live next to the service that
// consumes them.
package service

import (
	"os"

	"github.com/deppfellow/mystic-backend/internal/server"
)

type Services struct {
	Chat       *ChatService
	Horoscope  *HoroscopeService
	Numerology *NumerologyService
	Tarot      *TarotService
	Zodiac     *ZodiacService
}

func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		Chat:       NewChatService(s, os.Getenv),
		Horoscope:  NewHoroscopeService(s),
		Numerology: NewNumerologyService(s),
		Tarot:      NewTarotService(s),
		Zodiac:     NewZodiacService(s),
	}, nil
}
