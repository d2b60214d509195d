package handler

import (
	"github.com/deppfellow/mystic-backend/internal/config"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/service"
)

// FortuneHandler exposes the content endpoints: chat, horoscope, numerology,
// tarot and zodiac.
type FortuneHandler struct {
	Handler
	services *service.Services
}

func NewFortuneHandler(s *server.Server, services *service.Services) *FortuneHandler {
	return &FortuneHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

func (h *FortuneHandler) Chat() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerChat,
		func() *service.ChatRequest { return &service.ChatRequest{} },
		h.services.Chat.Complete)
}

func (h *FortuneHandler) Horoscope() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerHoroscope,
		func() *service.HoroscopeRequest { return &service.HoroscopeRequest{} },
		h.services.Horoscope.Read)
}

func (h *FortuneHandler) Numerology() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerNumerology,
		func() *service.NumerologyRequest { return &service.NumerologyRequest{} },
		h.services.Numerology.Compute)
}

func (h *FortuneHandler) NumerologyReading() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerReading,
		func() *service.NumerologyRequest { return &service.NumerologyRequest{} },
		h.services.Numerology.Reading)
}

func (h *FortuneHandler) Tarot() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerTarot,
		func() *service.TarotRequest { return &service.TarotRequest{} },
		h.services.Tarot.Draw)
}

func (h *FortuneHandler) Zodiac() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerZodiac,
		func() *service.ZodiacRequest { return &service.ZodiacRequest{} },
		h.services.Zodiac.Sign)
}

func (h *FortuneHandler) Compatibility() Endpoint {
	return NewEndpoint(h.Handler, config.LambdaHandlerCompatibility,
		func() *service.CompatibilityRequest { return &service.CompatibilityRequest{} },
		h.services.Zodiac.Compatibility)
}

// Endpoints returns every content endpoint keyed by its Lambda handler name.
func (h *FortuneHandler) Endpoints() map[string]Endpoint {
	endpoints := map[string]Endpoint{}
	for _, e := range []Endpoint{
		h.Chat(),
		h.Horoscope(),
		h.Numerology(),
		h.NumerologyReading(),
		h.Tarot(),
		h.Zodiac(),
		h.Compatibility(),
	} {
		endpoints[e.Name] = e
	}
	return endpoints
}
