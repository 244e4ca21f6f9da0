package services

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken parses a token string and returns the user id it
	// was issued for.
	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
}
