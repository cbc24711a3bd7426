package domain

import "time"

// Vote records a single user's answer on a prediction.
// At most one vote exists per (UserID, PredictionID) pair; the database
// enforces this with a unique constraint.
type Vote struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PredictionID string    `json:"prediction_id"`
	Choice       Choice    `json:"choice"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResolvedPredictionView is a prediction the user voted on that has since
// resolved, joined with the user's own vote and what it earned them.
type ResolvedPredictionView struct {
	Prediction
	UserVote  Choice    `json:"user_vote"`
	IsCorrect bool      `json:"is_correct"`
	XPEarned  int       `json:"xp_earned"`
	VotedAt   time.Time `json:"voted_at"`
}
