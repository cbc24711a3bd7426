package domain

// LeaderboardEntry is one row of the XP ranking.
// SuccessRate is the rounded percentage of the user's votes that matched the
// resolved outcome, 0 when they have no votes.
type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	XP                 int    `json:"xp"`
	CorrectPredictions int    `json:"correct_predictions"`
	TotalPredictions   int    `json:"total_predictions"`
	SuccessRate        int    `json:"success_rate"`
}
