package prediction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/predictle/predictle/internal/domain"
)

// fakeStore is an in-memory implementation of the user, prediction and vote
// repositories with the same transactional semantics as the real thing:
// duplicate votes are rejected, resolution is a one-way compare-and-swap and
// the payout happens inside it.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	predictions map[string]*domain.Prediction
	votes       map[string]map[string]*domain.Vote // predictionID -> userID -> vote

	// Error knob for failure-path tests.
	listExpiredErr error

	// afterListExpired runs between taking the expired snapshot and returning
	// it, to simulate a resolver racing the sweep.
	afterListExpired func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*domain.User),
		predictions: make(map[string]*domain.Prediction),
		votes:       make(map[string]map[string]*domain.Vote),
	}
}

func (f *fakeStore) addUser() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.com",
		CreatedAt: time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addActivePrediction(creatorID string, answer domain.Choice, endDate time.Time) *domain.Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &domain.Prediction{
		ID:            uuid.NewString(),
		CreatorID:     creatorID,
		Question:      "Will it rain tomorrow?",
		EndDate:       endDate,
		Status:        domain.PredictionActive,
		CorrectAnswer: answer,
		CreatedAt:     time.Now(),
	}
	f.predictions[p.ID] = p
	return p
}

func (f *fakeStore) userXP(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID].XP
}

// repository.User

func (f *fakeStore) CreateUser(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// repository.Prediction

func (f *fakeStore) CreatePrediction(_ context.Context, p *domain.Prediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	p.Status = domain.PredictionActive
	p.CreatedAt = time.Now()
	cp := *p
	f.predictions[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetPrediction(_ context.Context, predictionID string) (*domain.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.predictions[predictionID]
	if !ok {
		return nil, domain.ErrPredictionNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListActivePredictions(_ context.Context) ([]domain.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Prediction
	for _, p := range f.predictions {
		if p.Status == domain.PredictionActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListExpiredActive(_ context.Context, now time.Time) ([]domain.Prediction, error) {
	if f.listExpiredErr != nil {
		return nil, f.listExpiredErr
	}
	f.mu.Lock()
	var out []domain.Prediction
	for _, p := range f.predictions {
		if p.Status == domain.PredictionActive && !p.EndDate.After(now) {
			out = append(out, *p)
		}
	}
	f.mu.Unlock()
	if f.afterListExpired != nil {
		f.afterListExpired()
	}
	return out, nil
}

func (f *fakeStore) ResolvePrediction(_ context.Context, predictionID string, outcome domain.Choice, bonusXP int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.predictions[predictionID]
	if !ok {
		return 0, domain.ErrPredictionNotFound
	}
	switch p.Status {
	case domain.PredictionResolved:
		return 0, domain.ErrAlreadyResolved
	case domain.PredictionCancelled:
		return 0, domain.ErrPredictionClosed
	}

	now := time.Now()
	p.Status = domain.PredictionResolved
	p.Result = &outcome
	p.ResolvedAt = &now

	winners := 0
	for userID, v := range f.votes[predictionID] {
		if v.Choice != outcome {
			continue
		}
		winners++
		if u, ok := f.users[userID]; ok {
			u.XP += bonusXP
			u.CorrectPredictions++
		}
	}
	return winners, nil
}

func (f *fakeStore) CancelPrediction(_ context.Context, predictionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.predictions[predictionID]
	if !ok {
		return domain.ErrPredictionNotFound
	}
	switch p.Status {
	case domain.PredictionResolved:
		return domain.ErrAlreadyResolved
	case domain.PredictionCancelled:
		return domain.ErrPredictionClosed
	}
	p.Status = domain.PredictionCancelled
	return nil
}

// repository.Vote

func (f *fakeStore) CastVote(_ context.Context, vote *domain.Vote, participationXP int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.predictions[vote.PredictionID]
	if !ok {
		return domain.ErrPredictionNotFound
	}
	if p.Status != domain.PredictionActive {
		return domain.ErrPredictionClosed
	}
	u, ok := f.users[vote.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if _, voted := f.votes[vote.PredictionID][vote.UserID]; voted {
		return domain.ErrDuplicateVote
	}

	vote.ID = uuid.NewString()
	vote.CreatedAt = time.Now()
	if f.votes[vote.PredictionID] == nil {
		f.votes[vote.PredictionID] = make(map[string]*domain.Vote)
	}
	cp := *vote
	f.votes[vote.PredictionID][vote.UserID] = &cp

	p.TotalVotes++
	if vote.Choice == domain.ChoiceYes {
		p.YesVotes++
	} else {
		p.NoVotes++
	}
	u.XP += participationXP
	u.TotalPredictions++
	return nil
}

func (f *fakeStore) GetUserVote(_ context.Context, userID, predictionID string) (*domain.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.votes[predictionID][userID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f *fakeStore) ListVotesByPrediction(_ context.Context, predictionID string) ([]domain.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Vote
	for _, v := range f.votes[predictionID] {
		out = append(out, *v)
	}
	return out, nil
}
