package service

import (
	"context"
	"strings"

	"github.com/deppfellow/mystic-backend/internal/numerology"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
)

type NumerologyRequest struct {
	Name string `json:"name" validate:"required"`
	DOB  string `json:"dob" validate:"required"`
}

func (r *NumerologyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.DOB = strings.TrimSpace(r.DOB)
}

func (r *NumerologyRequest) Validate() error {
	return validation.Check(r, "Name and dob required")
}

type NumerologyService struct {
	server *server.Server
}

func NewNumerologyService(s *server.Server) *NumerologyService {
	return &NumerologyService{server: s}
}

// Compute returns the three core numbers. A dob that cannot be read yields a
// null life path, not an error.
func (s *NumerologyService) Compute(_ context.Context, req *NumerologyRequest) (*numerology.Result, error) {
	result := numerology.Compute(req.Name, req.DOB)
	return &result, nil
}

// Reading is Compute with the interpretation of each number attached.
func (s *NumerologyService) Reading(ctx context.Context, req *NumerologyRequest) (*numerology.Reading, error) {
	result, err := s.Compute(ctx, req)
	if err != nil {
		return nil, err
	}

	reading := result.Interpret()
	return &reading, nil
}
