package service

import (
	"context"
	"strings"

	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
	"github.com/deppfellow/mystic-backend/internal/zodiac"
	"github.com/rs/zerolog"
)

const validDOBMessage = "Valid dob required"

type ZodiacRequest struct {
	DOB string `json:"dob" validate:"required,datetime=2006-01-02"`
}

func (r *ZodiacRequest) Normalize() {
	r.DOB = strings.TrimSpace(r.DOB)
}

func (r *ZodiacRequest) Validate() error {
	return validation.Check(r, validDOBMessage)
}

type ZodiacResponse struct {
	Sign string `json:"sign"`
}

type ZodiacService struct {
	server *server.Server
}

func NewZodiacService(s *server.Server) *ZodiacService {
	return &ZodiacService{server: s}
}

func (s *ZodiacService) Sign(ctx context.Context, req *ZodiacRequest) (*ZodiacResponse, error) {
	sign, err := zodiac.FromDOB(req.DOB)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("zodiac lookup rejected dob")
		return nil, errs.NewBadRequestError(validDOBMessage, nil, []errs.FieldError{
			{Field: "dob", Error: err.Error()},
		})
	}

	return &ZodiacResponse{Sign: sign}, nil
}

const twoSignsMessage = "Two valid signs required"

type CompatibilityRequest struct {
	Sign    string `json:"sign" validate:"required"`
	Partner string `json:"partner" validate:"required"`
}

func (r *CompatibilityRequest) Normalize() {
	r.Sign = strings.TrimSpace(r.Sign)
	r.Partner = strings.TrimSpace(r.Partner)
}

func (r *CompatibilityRequest) Validate() error {
	return validation.Check(r, twoSignsMessage)
}

type CompatibilityResponse struct {
	Sign    string `json:"sign"`
	Partner string `json:"partner"`
	Score   int    `json:"score"`
}

// Compatibility scores a pair of signs. Pairs the table does not rank get
// zodiac.NeutralScore.
func (s *ZodiacService) Compatibility(ctx context.Context, req *CompatibilityRequest) (*CompatibilityResponse, error) {
	var fieldErrs []errs.FieldError
	sign, err := zodiac.ParseSign(req.Sign)
	if err != nil {
		fieldErrs = append(fieldErrs, errs.FieldError{Field: "sign", Error: err.Error()})
	}
	partner, err := zodiac.ParseSign(req.Partner)
	if err != nil {
		fieldErrs = append(fieldErrs, errs.FieldError{Field: "partner", Error: err.Error()})
	}
	if len(fieldErrs) > 0 {
		zerolog.Ctx(ctx).Warn().Str("sign", req.Sign).Str("partner", req.Partner).Msg("compatibility rejected signs")
		return nil, errs.NewBadRequestError(twoSignsMessage, nil, fieldErrs)
	}

	score, err := zodiac.Compatibility(sign, partner)
	if err != nil {
		return nil, err
	}

	return &CompatibilityResponse{Sign: sign, Partner: partner, Score: score}, nil
}
