package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/metrics"
	"github.com/predictle/predictle/internal/repository"
)

// Service defines the interface for user operations
type Service interface {
	// LoginOrRegister returns the user for the given email, creating one on
	// first login. Idempotent by normalized email; created reports whether a
	// new account was made.
	LoginOrRegister(ctx context.Context, email string) (user *domain.User, created bool, err error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo     repository.User
	validate *validator.Validate
}

// NewService creates a new user service
func NewService(repo repository.User) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
	}
}

// NormalizeEmail lowercases and trims an email so the same address always
// maps to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) LoginOrRegister(ctx context.Context, email string) (*domain.User, bool, error) {
	log := logger.FromContext(ctx)

	email = NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, false, fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		log.Debug("Existing user logged in", "user_id", existing.ID)
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Error("Failed to look up user by email", "error", err)
		return nil, false, err
	}

	newUser := &domain.User{Email: email}
	if err := s.repo.CreateUser(ctx, newUser); err != nil {
		log.Error("Failed to create user", "error", err)
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersRegistered.Inc()
	log.Info("User registered", "user_id", newUser.ID)
	return newUser, true, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
