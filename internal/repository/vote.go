package repository

import (
	"context"

	"github.com/predictle/predictle/internal/domain"
)

// Vote defines the interface for vote persistence.
type Vote interface {
	// CastVote performs the full vote unit atomically: verify the prediction
	// is active, insert the vote, increment the prediction tallies and grant
	// the voter participationXP plus one total_predictions. A second vote by
	// the same user on the same prediction yields domain.ErrDuplicateVote;
	// voting on a non-active prediction yields domain.ErrPredictionClosed.
	CastVote(ctx context.Context, vote *domain.Vote, participationXP int) error

	GetUserVote(ctx context.Context, userID, predictionID string) (*domain.Vote, error)
	ListVotesByPrediction(ctx context.Context, predictionID string) ([]domain.Vote, error)
}
