package prediction

const (
	// XP rewards
	ParticipationXP    = 5  // XP granted immediately for casting any vote
	CorrectnessBonusXP = 10 // Extra XP granted when a vote matches the resolved outcome

	// Input limits
	MaxQuestionLength    = 500
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 100
)
