package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/predictle/predictle/internal/domain"
)

// PredictionRepository implements the prediction repository for PostgreSQL
type PredictionRepository struct {
	db *pgxpool.Pool
}

// NewPredictionRepository creates a new PredictionRepository
func NewPredictionRepository(db *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{db: db}
}

const predictionColumns = `prediction_id, creator_id, question, COALESCE(description, ''), COALESCE(category, ''),
	end_date, status, correct_answer, result, total_votes, yes_votes, no_votes, created_at, resolved_at`

func scanPrediction(row pgx.Row) (*domain.Prediction, error) {
	var (
		p      domain.Prediction
		result *string
	)
	err := row.Scan(&p.ID, &p.CreatorID, &p.Question, &p.Description, &p.Category,
		&p.EndDate, &p.Status, &p.CorrectAnswer, &result,
		&p.TotalVotes, &p.YesVotes, &p.NoVotes, &p.CreatedAt, &p.ResolvedAt)
	if err != nil {
		return nil, err
	}
	if result != nil {
		c := domain.Choice(*result)
		p.Result = &c
	}
	return &p, nil
}

// CreatePrediction inserts a new prediction with status=active and zeroed tallies
func (r *PredictionRepository) CreatePrediction(ctx context.Context, p *domain.Prediction) error {
	creatorID, err := parseUUID("creator", p.CreatorID)
	if err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO predictions (prediction_id, creator_id, question, description, category,
			end_date, status, correct_answer, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, 'active', $7, NOW())
		RETURNING created_at
	`
	err = r.db.QueryRow(ctx, query, p.ID, creatorID, p.Question, p.Description, p.Category,
		p.EndDate, string(p.CorrectAnswer)).Scan(&p.CreatedAt)
	if err != nil {
		return storageErr("failed to insert prediction", err)
	}

	p.Status = domain.PredictionActive
	p.TotalVotes, p.YesVotes, p.NoVotes = 0, 0, 0
	return nil
}

// GetPrediction retrieves a prediction by ID
func (r *PredictionRepository) GetPrediction(ctx context.Context, predictionID string) (*domain.Prediction, error) {
	id, err := parseUUID("prediction", predictionID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE prediction_id = $1`, predictionColumns)
	p, err := scanPrediction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPredictionNotFound
		}
		return nil, storageErr("failed to get prediction", err)
	}
	return p, nil
}

// ListActivePredictions returns all active predictions, newest first.
// Expired-but-unswept predictions are included on purpose: expiry is an
// explicit transition owned by the sweep, not a query-time filter.
func (r *PredictionRepository) ListActivePredictions(ctx context.Context) ([]domain.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE status = 'active' ORDER BY created_at DESC`, predictionColumns)
	return r.listPredictions(ctx, query)
}

// ListExpiredActive returns active predictions whose deadline has passed,
// oldest deadline first so the longest-overdue resolve first.
func (r *PredictionRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Prediction, error) {
	query := fmt.Sprintf(`SELECT %s FROM predictions WHERE status = 'active' AND end_date <= $1 ORDER BY end_date ASC`, predictionColumns)
	return r.listPredictions(ctx, query, now)
}

func (r *PredictionRepository) listPredictions(ctx context.Context, query string, args ...any) ([]domain.Prediction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("failed to list predictions", err)
	}
	defer rows.Close()

	var predictions []domain.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, storageErr("failed to scan prediction", err)
		}
		predictions = append(predictions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("failed to iterate predictions", err)
	}
	return predictions, nil
}

// ResolvePrediction transitions a prediction from active to resolved and pays
// the correctness bonus to every winning voter, all in one transaction.
//
// The status update is a compare-and-swap on status='active': under concurrent
// resolution (admin racing the expiry sweep) exactly one caller's UPDATE
// matches a row; everyone else is told why via the follow-up status read.
// Because the payout shares the transaction, a resolve that cannot pay out
// does not commit and the prediction stays active for a retry.
func (r *PredictionRepository) ResolvePrediction(ctx context.Context, predictionID string, outcome domain.Choice, bonusXP int) (int, error) {
	id, err := parseUUID("prediction", predictionID)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, storageErr("failed to begin transaction", err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE predictions
		SET status = 'resolved', result = $2, resolved_at = NOW()
		WHERE prediction_id = $1 AND status = 'active'
	`, id, string(outcome))
	if err != nil {
		return 0, storageErr("failed to resolve prediction", err)
	}

	if tag.RowsAffected() == 0 {
		return 0, r.classifyBlockedTransition(ctx, tx, id)
	}

	// Set-based payout: one statement covers every winning voter, so a crash
	// can never leave some winners paid and others not.
	payout, err := tx.Exec(ctx, `
		UPDATE users u
		SET xp = u.xp + $3,
		    correct_predictions = u.correct_predictions + 1,
		    updated_at = NOW()
		FROM votes v
		WHERE v.prediction_id = $1 AND v.choice = $2 AND v.user_id = u.user_id
	`, id, string(outcome), bonusXP)
	if err != nil {
		return 0, storageErr("failed to distribute resolution rewards", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storageErr("failed to commit resolution", err)
	}
	return int(payout.RowsAffected()), nil
}

// CancelPrediction transitions active -> cancelled. Terminal, no rewards.
func (r *PredictionRepository) CancelPrediction(ctx context.Context, predictionID string) error {
	id, err := parseUUID("prediction", predictionID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageErr("failed to begin transaction", err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE predictions
		SET status = 'cancelled', resolved_at = NOW()
		WHERE prediction_id = $1 AND status = 'active'
	`, id)
	if err != nil {
		return storageErr("failed to cancel prediction", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyBlockedTransition(ctx, tx, id)
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("failed to commit cancellation", err)
	}
	return nil
}

// classifyBlockedTransition explains why a CAS on status='active' matched no
// rows: the prediction is missing, already resolved, or cancelled.
func (r *PredictionRepository) classifyBlockedTransition(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM predictions WHERE prediction_id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPredictionNotFound
		}
		return storageErr("failed to read prediction status", err)
	}
	if status == string(domain.PredictionResolved) {
		return domain.ErrAlreadyResolved
	}
	return domain.ErrPredictionClosed
}
