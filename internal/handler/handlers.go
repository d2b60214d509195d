package handler

import (
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/service"
)

// Handlers is a container that groups all handlers.
//
// Similar to Middlewares and Services, this keeps router and Lambda setup clean:
// one object is passed around instead of many.
type Handlers struct {
	Fortune *FortuneHandler // Fortune serves the content endpoints over HTTP and Lambda.
	Health  *HealthHandler  // Health serves the service health endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Fortune: NewFortuneHandler(s, services),
		Health:  NewHealthHandler(s, services.Chat),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
