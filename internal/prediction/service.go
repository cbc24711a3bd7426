package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/metrics"
	"github.com/predictle/predictle/internal/repository"
)

// CreateRequest carries the creator-supplied fields for a new prediction.
type CreateRequest struct {
	CreatorID     string
	Question      string
	Description   string
	Category      string
	EndDate       time.Time
	CorrectAnswer domain.Choice
}

// Service defines the interface for the prediction lifecycle and the reward
// engine: creation, voting, resolution and the expiry sweep.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*domain.Prediction, error)
	Get(ctx context.Context, predictionID string) (*domain.Prediction, error)
	ListActive(ctx context.Context) ([]domain.Prediction, error)

	// CastVote accepts at most one vote per user per prediction and grants
	// the participation reward as part of the same atomic unit.
	CastVote(ctx context.Context, userID, predictionID string, choice domain.Choice) (*domain.Vote, error)

	// GetUserVote returns the user's existing vote on a prediction, or nil
	// if they have not voted. Clients use this to show and lock the choice.
	GetUserVote(ctx context.Context, userID, predictionID string) (*domain.Vote, error)

	// ListVotes returns every vote on a prediction, oldest first.
	ListVotes(ctx context.Context, predictionID string) ([]domain.Vote, error)

	// Resolve finalises the outcome and pays the correctness bonus to every
	// winning voter. One-way: a second call returns domain.ErrAlreadyResolved.
	Resolve(ctx context.Context, predictionID string, outcome domain.Choice) (*domain.ResolveResult, error)

	// Cancel closes a prediction without paying any rewards.
	Cancel(ctx context.Context, predictionID string) error

	// SweepExpired resolves every active prediction whose deadline has passed
	// using its stored correct answer. Per-item failures are logged and
	// counted; they never abort the rest of the sweep.
	SweepExpired(ctx context.Context, now time.Time) (domain.SweepResult, error)
}

type service struct {
	predictions repository.Prediction
	votes       repository.Vote
	users       repository.User
}

// NewService creates a new prediction service
func NewService(predictions repository.Prediction, votes repository.Vote, users repository.User) Service {
	return &service{
		predictions: predictions,
		votes:       votes,
		users:       users,
	}
}

// Create validates and stores a new prediction. The correct answer is
// mandatory at creation and write-once; no update path exists for it.
func (s *service) Create(ctx context.Context, req CreateRequest) (*domain.Prediction, error) {
	log := logger.FromContext(ctx)

	if err := s.validateCreate(ctx, req); err != nil {
		return nil, err
	}

	p := &domain.Prediction{
		CreatorID:     req.CreatorID,
		Question:      req.Question,
		Description:   req.Description,
		Category:      req.Category,
		EndDate:       req.EndDate,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.predictions.CreatePrediction(ctx, p); err != nil {
		log.Error("Failed to create prediction", "error", err, "creator_id", req.CreatorID)
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	metrics.PredictionsCreated.Inc()
	log.Info("Prediction created",
		"prediction_id", p.ID,
		"creator_id", p.CreatorID,
		"end_date", p.EndDate)
	return p, nil
}

func (s *service) validateCreate(ctx context.Context, req CreateRequest) error {
	switch {
	case req.Question == "":
		return fmt.Errorf("%w: question is required", domain.ErrValidation)
	case len(req.Question) > MaxQuestionLength:
		return fmt.Errorf("%w: question exceeds %d characters", domain.ErrValidation, MaxQuestionLength)
	case len(req.Description) > MaxDescriptionLength:
		return fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, MaxDescriptionLength)
	case len(req.Category) > MaxCategoryLength:
		return fmt.Errorf("%w: category exceeds %d characters", domain.ErrValidation, MaxCategoryLength)
	case !domain.ValidChoice(string(req.CorrectAnswer)):
		return fmt.Errorf("%w: correct answer must be yes or no", domain.ErrValidation)
	case !req.EndDate.After(time.Now()):
		return fmt.Errorf("%w: end date must be in the future", domain.ErrValidation)
	}

	// Creator must exist; a prediction with a dangling creator would break
	// the history views later.
	if _, err := s.users.GetUserByID(ctx, req.CreatorID); err != nil {
		return err
	}
	return nil
}

func (s *service) Get(ctx context.Context, predictionID string) (*domain.Prediction, error) {
	return s.predictions.GetPrediction(ctx, predictionID)
}

func (s *service) ListActive(ctx context.Context) ([]domain.Prediction, error) {
	return s.predictions.ListActivePredictions(ctx)
}

// CastVote records the vote, updates tallies and grants the participation
// reward, all in one repository transaction.
func (s *service) CastVote(ctx context.Context, userID, predictionID string, choice domain.Choice) (*domain.Vote, error) {
	log := logger.FromContext(ctx)

	if !domain.ValidChoice(string(choice)) {
		return nil, fmt.Errorf("%w: choice must be yes or no", domain.ErrValidation)
	}

	vote := &domain.Vote{
		UserID:       userID,
		PredictionID: predictionID,
		Choice:       choice,
	}
	if err := s.votes.CastVote(ctx, vote, ParticipationXP); err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			log.Debug("Duplicate vote rejected", "user_id", userID, "prediction_id", predictionID)
		} else {
			log.Error("Failed to cast vote", "error", err, "user_id", userID, "prediction_id", predictionID)
		}
		return nil, err
	}

	metrics.VotesCast.WithLabelValues(string(choice)).Inc()
	metrics.XPAwarded.WithLabelValues(metrics.XPReasonParticipation).Add(ParticipationXP)
	log.Info("Vote cast",
		"vote_id", vote.ID,
		"user_id", userID,
		"prediction_id", predictionID,
		"choice", choice)
	return vote, nil
}

func (s *service) GetUserVote(ctx context.Context, userID, predictionID string) (*domain.Vote, error) {
	return s.votes.GetUserVote(ctx, userID, predictionID)
}

func (s *service) ListVotes(ctx context.Context, predictionID string) ([]domain.Vote, error) {
	return s.votes.ListVotesByPrediction(ctx, predictionID)
}

// Resolve finalises the outcome. The repository performs the status
// compare-and-swap and the winner payout in a single transaction, so a
// concurrent resolver observes ErrAlreadyResolved and no one is paid twice.
func (s *service) Resolve(ctx context.Context, predictionID string, outcome domain.Choice) (*domain.ResolveResult, error) {
	result, err := s.resolve(ctx, predictionID, outcome, metrics.ResolveTriggerManual)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) resolve(ctx context.Context, predictionID string, outcome domain.Choice, trigger string) (*domain.ResolveResult, error) {
	log := logger.FromContext(ctx)

	if !domain.ValidChoice(string(outcome)) {
		return nil, fmt.Errorf("%w: outcome must be yes or no", domain.ErrValidation)
	}

	winners, err := s.predictions.ResolvePrediction(ctx, predictionID, outcome, CorrectnessBonusXP)
	if err != nil {
		return nil, err
	}

	bonusPaid := winners * CorrectnessBonusXP
	metrics.PredictionsResolved.WithLabelValues(trigger).Inc()
	metrics.XPAwarded.WithLabelValues(metrics.XPReasonCorrectnessBonus).Add(float64(bonusPaid))

	log.Info("Prediction resolved",
		"prediction_id", predictionID,
		"outcome", outcome,
		"trigger", trigger,
		"winning_votes", winners,
		"bonus_xp_paid", bonusPaid)

	return &domain.ResolveResult{
		PredictionID: predictionID,
		Outcome:      outcome,
		WinningVotes: winners,
		BonusXPPaid:  bonusPaid,
	}, nil
}

func (s *service) Cancel(ctx context.Context, predictionID string) error {
	log := logger.FromContext(ctx)

	if err := s.predictions.CancelPrediction(ctx, predictionID); err != nil {
		return err
	}

	log.Info("Prediction cancelled", "prediction_id", predictionID)
	return nil
}

// SweepExpired drives every overdue active prediction through resolution
// with its stored correct answer. Losing the resolution race to a manual
// admin resolve is normal and counted as skipped, not failed.
func (s *service) SweepExpired(ctx context.Context, now time.Time) (domain.SweepResult, error) {
	log := logger.FromContext(ctx)
	var result domain.SweepResult

	expired, err := s.predictions.ListExpiredActive(ctx, now)
	if err != nil {
		log.Error("Failed to list expired predictions", "error", err)
		return result, fmt.Errorf("failed to list expired predictions: %w", err)
	}
	if len(expired) == 0 {
		return result, nil
	}

	log.Info("Expiry sweep starting", "candidates", len(expired))

	for _, p := range expired {
		_, err := s.resolve(ctx, p.ID, p.CorrectAnswer, metrics.ResolveTriggerSweep)
		switch {
		case err == nil:
			result.Resolved++
		case errors.Is(err, domain.ErrAlreadyResolved), errors.Is(err, domain.ErrPredictionClosed):
			// Someone resolved or cancelled it between the listing and now.
			result.Skipped++
		default:
			result.Failed++
			log.Error("Failed to sweep prediction", "error", err, "prediction_id", p.ID)
		}
	}

	log.Info("Expiry sweep finished",
		"resolved", result.Resolved,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}
