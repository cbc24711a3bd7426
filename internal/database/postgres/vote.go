package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predictle/predictle/internal/domain"
)

// VoteRepository implements the vote repository for PostgreSQL
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{db: db}
}

// CastVote records a vote as one atomic unit: status check, vote insert,
// tally increments and the voter's participation reward either all commit
// or none do.
//
// The prediction row is locked first so the status check holds until commit,
// and the (user_id, prediction_id) unique constraint turns a concurrent
// duplicate into ErrDuplicateVote instead of a double count.
func (r *VoteRepository) CastVote(ctx context.Context, vote *domain.Vote, participationXP int) error {
	userID, err := parseUUID("user", vote.UserID)
	if err != nil {
		return err
	}
	predictionID, err := parseUUID("prediction", vote.PredictionID)
	if err != nil {
		return err
	}
	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageErr("failed to begin transaction", err)
	}
	defer SafeRollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `
		SELECT status FROM predictions WHERE prediction_id = $1 FOR UPDATE
	`, predictionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPredictionNotFound
		}
		return storageErr("failed to lock prediction", err)
	}
	if status != string(domain.PredictionActive) {
		return domain.ErrPredictionClosed
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO votes (vote_id, user_id, prediction_id, choice, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`, vote.ID, userID, predictionID, string(vote.Choice)).Scan(&vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateVote
		}
		return storageErr("failed to insert vote", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE predictions
		SET total_votes = total_votes + 1,
		    yes_votes = yes_votes + CASE WHEN $2 = 'yes' THEN 1 ELSE 0 END,
		    no_votes = no_votes + CASE WHEN $2 = 'no' THEN 1 ELSE 0 END
		WHERE prediction_id = $1
	`, predictionID, string(vote.Choice))
	if err != nil {
		return storageErr("failed to update vote tallies", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET xp = xp + $2,
		    total_predictions = total_predictions + 1,
		    updated_at = NOW()
		WHERE user_id = $1
	`, userID, participationXP)
	if err != nil {
		return storageErr("failed to grant participation reward", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("failed to commit vote", err)
	}
	return nil
}

const voteColumns = `vote_id, user_id, prediction_id, choice, created_at`

func scanVote(row pgx.Row) (*domain.Vote, error) {
	var v domain.Vote
	if err := row.Scan(&v.ID, &v.UserID, &v.PredictionID, &v.Choice, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetUserVote returns the user's vote on a prediction, or nil if the user
// has not voted on it.
func (r *VoteRepository) GetUserVote(ctx context.Context, userID, predictionID string) (*domain.Vote, error) {
	uid, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseUUID("prediction", predictionID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM votes WHERE user_id = $1 AND prediction_id = $2`, voteColumns)
	v, err := scanVote(r.db.QueryRow(ctx, query, uid, pid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("failed to get user vote", err)
	}
	return v, nil
}

// ListVotesByPrediction returns all votes on a prediction
func (r *VoteRepository) ListVotesByPrediction(ctx context.Context, predictionID string) ([]domain.Vote, error) {
	pid, err := parseUUID("prediction", predictionID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM votes WHERE prediction_id = $1 ORDER BY created_at ASC`, voteColumns)
	rows, err := r.db.Query(ctx, query, pid)
	if err != nil {
		return nil, storageErr("failed to list votes", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, storageErr("failed to scan vote", err)
		}
		votes = append(votes, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("failed to iterate votes", err)
	}
	return votes, nil
}
