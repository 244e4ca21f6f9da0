package services

import (
	"context"

	"github.com/SscSPs/tax_engine_app/internal/core/domain"
	"github.com/SscSPs/tax_engine_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeactivateUser soft deletes a user.
	DeactivateUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthenticatorSvc defines credential verification operations
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies email and password and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
