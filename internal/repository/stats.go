package repository

import (
	"context"

	"github.com/predictle/predictle/internal/domain"
)

// Stats defines the read-side queries backing the leaderboard and the
// per-user history of resolved predictions.
type Stats interface {
	// TopUsersByXP returns up to limit users ordered by XP descending.
	// Ties are broken by account age (oldest first) then user ID, so the
	// ordering is stable across calls.
	TopUsersByXP(ctx context.Context, limit int) ([]domain.User, error)

	// UserResolvedHistory returns resolved predictions the user voted on,
	// newest vote first.
	UserResolvedHistory(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error)
}
