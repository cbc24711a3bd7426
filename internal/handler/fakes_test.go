package handler

import (
	"context"
	"time"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/prediction"
)

// Function-field fakes keep each test's behavior next to its assertions.

type fakeUserService struct {
	loginFn   func(ctx context.Context, email string) (*domain.User, bool, error)
	getUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (f *fakeUserService) LoginOrRegister(ctx context.Context, email string) (*domain.User, bool, error) {
	return f.loginFn(ctx, email)
}

func (f *fakeUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return f.getUserFn(ctx, userID)
}

type fakePredictionService struct {
	createFn     func(ctx context.Context, req prediction.CreateRequest) (*domain.Prediction, error)
	getFn        func(ctx context.Context, predictionID string) (*domain.Prediction, error)
	listActiveFn func(ctx context.Context) ([]domain.Prediction, error)
	castVoteFn   func(ctx context.Context, userID, predictionID string, choice domain.Choice) (*domain.Vote, error)
	userVoteFn   func(ctx context.Context, userID, predictionID string) (*domain.Vote, error)
	listVotesFn  func(ctx context.Context, predictionID string) ([]domain.Vote, error)
	resolveFn    func(ctx context.Context, predictionID string, outcome domain.Choice) (*domain.ResolveResult, error)
	cancelFn     func(ctx context.Context, predictionID string) error
	sweepFn      func(ctx context.Context, now time.Time) (domain.SweepResult, error)
}

func (f *fakePredictionService) Create(ctx context.Context, req prediction.CreateRequest) (*domain.Prediction, error) {
	return f.createFn(ctx, req)
}

func (f *fakePredictionService) Get(ctx context.Context, predictionID string) (*domain.Prediction, error) {
	return f.getFn(ctx, predictionID)
}

func (f *fakePredictionService) ListActive(ctx context.Context) ([]domain.Prediction, error) {
	return f.listActiveFn(ctx)
}

func (f *fakePredictionService) CastVote(ctx context.Context, userID, predictionID string, choice domain.Choice) (*domain.Vote, error) {
	return f.castVoteFn(ctx, userID, predictionID, choice)
}

func (f *fakePredictionService) GetUserVote(ctx context.Context, userID, predictionID string) (*domain.Vote, error) {
	return f.userVoteFn(ctx, userID, predictionID)
}

func (f *fakePredictionService) ListVotes(ctx context.Context, predictionID string) ([]domain.Vote, error) {
	return f.listVotesFn(ctx, predictionID)
}

func (f *fakePredictionService) Resolve(ctx context.Context, predictionID string, outcome domain.Choice) (*domain.ResolveResult, error) {
	return f.resolveFn(ctx, predictionID, outcome)
}

func (f *fakePredictionService) Cancel(ctx context.Context, predictionID string) error {
	return f.cancelFn(ctx, predictionID)
}

func (f *fakePredictionService) SweepExpired(ctx context.Context, now time.Time) (domain.SweepResult, error) {
	return f.sweepFn(ctx, now)
}

type fakeStatsService struct {
	leaderboardFn func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	historyFn     func(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error)
}

func (f *fakeStatsService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return f.leaderboardFn(ctx, limit)
}

func (f *fakeStatsService) GetUserResolvedHistory(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error) {
	return f.historyFn(ctx, userID)
}
