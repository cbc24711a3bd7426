package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predictle/predictle/internal/domain"
)

// StatsRepository implements the read-side stats queries for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// TopUsersByXP returns up to limit users ordered by XP descending.
// Ties break on account age then user_id so the ranking is stable.
func (r *StatsRepository) TopUsersByXP(ctx context.Context, limit int) ([]domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		ORDER BY xp DESC, created_at ASC, user_id ASC
		LIMIT $1
	`, userColumns)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr("failed to query leaderboard", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("failed to scan leaderboard row", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("failed to iterate leaderboard", err)
	}
	return users, nil
}

// UserResolvedHistory returns resolved predictions the user voted on,
// newest vote first, joined with the user's own vote.
func (r *StatsRepository) UserResolvedHistory(ctx context.Context, userID string) ([]domain.ResolvedPredictionView, error) {
	uid, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT p.prediction_id, p.creator_id, p.question, COALESCE(p.description, ''), COALESCE(p.category, ''),
		       p.end_date, p.status, p.correct_answer, p.result,
		       p.total_votes, p.yes_votes, p.no_votes, p.created_at, p.resolved_at,
		       v.choice, v.created_at
		FROM votes v
		JOIN predictions p ON p.prediction_id = v.prediction_id
		WHERE v.user_id = $1 AND p.status = 'resolved'
		ORDER BY v.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, storageErr("failed to query resolved history", err)
	}
	defer rows.Close()

	var history []domain.ResolvedPredictionView
	for rows.Next() {
		var (
			view   domain.ResolvedPredictionView
			result *string
		)
		err := rows.Scan(&view.ID, &view.CreatorID, &view.Question, &view.Description, &view.Category,
			&view.EndDate, &view.Status, &view.CorrectAnswer, &result,
			&view.TotalVotes, &view.YesVotes, &view.NoVotes, &view.CreatedAt, &view.ResolvedAt,
			&view.UserVote, &view.VotedAt)
		if err != nil {
			return nil, storageErr("failed to scan resolved history row", err)
		}
		if result != nil {
			c := domain.Choice(*result)
			view.Result = &c
			view.IsCorrect = view.UserVote == c
		}
		history = append(history, view)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("failed to iterate resolved history", err)
	}
	return history, nil
}
