package repository

import (
	"context"
	"time"

	"github.com/predictle/predictle/internal/domain"
)

// Prediction defines the interface for prediction persistence and the
// transactional state transitions of the prediction lifecycle.
type Prediction interface {
	CreatePrediction(ctx context.Context, p *domain.Prediction) error
	GetPrediction(ctx context.Context, predictionID string) (*domain.Prediction, error)
	// ListActivePredictions returns every prediction with status=active,
	// including ones past their deadline. Expiry is an explicit transition
	// owned by the sweep, not a query-time filter.
	ListActivePredictions(ctx context.Context) ([]domain.Prediction, error)
	// ListExpiredActive returns active predictions whose deadline has passed.
	ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Prediction, error)

	// ResolvePrediction performs, in one transaction, the compare-and-swap of
	// status from active to resolved and the bonus payout to every voter whose
	// choice matched the outcome (+bonusXP and +1 correct_predictions each).
	// Returns the number of winning votes paid.
	//
	// Exactly one concurrent caller wins the CAS; the rest get
	// domain.ErrAlreadyResolved (or ErrPredictionClosed for a cancelled
	// prediction). A missing prediction yields domain.ErrPredictionNotFound.
	ResolvePrediction(ctx context.Context, predictionID string, outcome domain.Choice, bonusXP int) (winningVotes int, err error)

	// CancelPrediction transitions active -> cancelled. No rewards are paid.
	CancelPrediction(ctx context.Context, predictionID string) error
}
