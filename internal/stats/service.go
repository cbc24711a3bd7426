package stats

import (
	"context"
	"fmt"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/prediction"
	"github.com/predictle/predictle/internal/repository"
)

const (
	// DefaultLeaderboardLimit matches the original ten-row leaderboard view.
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Service defines the read-only projections over user XP and votes.
type Service interface {
	// GetLeaderboard returns up to limit users ranked by XP descending.
	// limit <= 0 falls back to DefaultLeaderboardLimit.
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// GetUserResolvedHistory returns resolved predictions the user voted on,
	// with the vote, its correctness and the XP it earned, newest first.
	GetUserResolvedHistory(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error)
}

type service struct {
	repo  repository.Stats
	cache *leaderboardCache
}

// NewService creates a new stats service
func NewService(repo repository.Stats) Service {
	return &service{
		repo:  repo,
		cache: newLeaderboardCache(),
	}
}

func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if entries, ok := s.cache.Get(limit); ok {
		return entries, nil
	}

	users, err := s.repo.TopUsersByXP(ctx, limit)
	if err != nil {
		log.Error("Failed to load leaderboard", "error", err)
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:               i + 1,
			UserID:             u.ID,
			Email:              u.Email,
			XP:                 u.XP,
			CorrectPredictions: u.CorrectPredictions,
			TotalPredictions:   u.TotalPredictions,
			SuccessRate:        u.SuccessRate(),
		})
	}

	s.cache.Set(limit, entries)
	return entries, nil
}

func (s *service) GetUserResolvedHistory(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error) {
	log := logger.FromContext(ctx)

	history, err := s.repo.UserResolvedHistory(ctx, userID)
	if err != nil {
		log.Error("Failed to load resolved history", "error", err, "user_id", userID)
		return nil, err
	}

	for i := range history {
		if history[i].IsCorrect {
			history[i].XPEarned = prediction.ParticipationXP + prediction.CorrectnessBonusXP
		} else {
			history[i].XPEarned = prediction.ParticipationXP
		}
	}
	return history, nil
}
