package domain

import "time"

// PredictionStatus is the lifecycle state of a prediction.
// Transitions: active -> resolved (terminal) or active -> cancelled (terminal).
type PredictionStatus string

const (
	PredictionActive    PredictionStatus = "active"
	PredictionResolved  PredictionStatus = "resolved"
	PredictionCancelled PredictionStatus = "cancelled"
)

// Choice is a yes/no answer on a prediction.
type Choice string

const (
	ChoiceYes Choice = "yes"
	ChoiceNo  Choice = "no"
)

// ValidChoice reports whether s is a recognised choice value.
func ValidChoice(s string) bool {
	return s == string(ChoiceYes) || s == string(ChoiceNo)
}

// Prediction represents a yes/no prediction question.
//
// CorrectAnswer is supplied by the creator at creation time and is write-once.
// It is used for automatic resolution when the deadline passes and must never
// be shown to voters, hence json:"-".
type Prediction struct {
	ID            string           `json:"id"`
	CreatorID     string           `json:"creator_id"`
	Question      string           `json:"question"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	EndDate       time.Time        `json:"end_date"`
	Status        PredictionStatus `json:"status"`
	CorrectAnswer Choice           `json:"-"`
	Result        *Choice          `json:"result,omitempty"`
	TotalVotes    int              `json:"total_votes"`
	YesVotes      int              `json:"yes_votes"`
	NoVotes       int              `json:"no_votes"`
	CreatedAt     time.Time        `json:"created_at"`
	ResolvedAt    *time.Time       `json:"resolved_at,omitempty"`
}

// ResolveResult summarises a completed resolution.
type ResolveResult struct {
	PredictionID string `json:"prediction_id"`
	Outcome      Choice `json:"outcome"`
	WinningVotes int    `json:"winning_votes"`
	BonusXPPaid  int    `json:"bonus_xp_paid"`
}

// SweepResult summarises one expiry sweep run.
type SweepResult struct {
	Resolved int `json:"resolved"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
