package repository

import (
	"context"

	"github.com/predictle/predictle/internal/domain"
)

// User defines the interface for user persistence.
type User interface {
	// CreateUser inserts a new user record. The caller is expected to have
	// checked for an existing user with the same email; the unique constraint
	// on email is the backstop for concurrent registrations.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
