package usecase

import (
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (operatorID uuid.UUID, terminalID string, err error)
}

type tokenValidatorImpl struct {
	jwtService        *jwt.Service
	defaultTerminalID string
}

func NewTokenValidator(jwtService *jwt.Service, cfg config.Config) TokenValidator {
	return &tokenValidatorImpl{
		jwtService:        jwtService,
		defaultTerminalID: cfg.Terminal.DefaultID,
	}
}

// ValidateToken falls back to the configured terminal when the token is not bound to one.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	terminalID := claims.TerminalID
	if terminalID == "" {
		terminalID = t.defaultTerminalID
	}
	return claims.OperatorID, terminalID, nil
}
