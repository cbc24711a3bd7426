package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predictle/predictle/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, email, xp, correct_predictions, total_predictions, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.XP, &u.CorrectPredictions, &u.TotalPredictions, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user record. The email unique constraint is the
// backstop against two concurrent registrations for the same address.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (user_id, email, xp, correct_predictions, total_predictions, created_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Email).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent registration; surface the
			// winner so login-or-register stays idempotent.
			existing, getErr := r.GetUserByEmail(ctx, user.Email)
			if getErr != nil {
				return getErr
			}
			*user = *existing
			return nil
		}
		return storageErr("failed to insert user", err)
	}

	user.XP = 0
	user.CorrectPredictions = 0
	user.TotalPredictions = 0
	return nil
}

// GetUserByID retrieves a user by their ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("failed to get user", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their normalized email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("failed to get user by email", err)
	}
	return user, nil
}
