package domain

import "time"

// User represents a registered user.
// XP and the prediction counters are maintained by the reward engine:
// TotalPredictions increments on every vote cast, CorrectPredictions only
// when a vote matches the resolved outcome.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	XP                 int       `json:"xp"`
	CorrectPredictions int       `json:"correct_predictions"`
	TotalPredictions   int       `json:"total_predictions"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SuccessRate returns the percentage of votes that matched the resolved
// outcome, rounded to the nearest integer. Zero when the user has no votes.
func (u User) SuccessRate() int {
	if u.TotalPredictions == 0 {
		return 0
	}
	return int(float64(u.CorrectPredictions)/float64(u.TotalPredictions)*100 + 0.5)
}
