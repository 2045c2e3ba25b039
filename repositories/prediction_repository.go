package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
)

var (
	ErrPredictionReferenceInvalid = errors.New("prediction references an unknown user or match")
	ErrPredictionScoreInvalid     = errors.New("prediction score violates constraints")
)

type PredictionRepository interface {
	Upsert(ctx context.Context, prediction *models.Prediction) error
	ListAll(ctx context.Context) ([]models.Prediction, error)
	ListByUser(ctx context.Context, email string) ([]models.Prediction, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

// Upsert writes the prediction, replacing any earlier one for the same user
// and match.
func (r *postgresPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_email, match_id, home_score, away_score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_email, match_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			updated_at = now()
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserEmail,
		prediction.MatchID,
		prediction.HomeScore,
		prediction.AwayScore,
	).Scan(&prediction.CreatedAt, &prediction.UpdatedAt)
	if err != nil {
		switch code, _ := pqErrorCode(err); code {
		case pqForeignKeyViolation:
			return ErrPredictionReferenceInvalid
		case pqCheckViolation:
			return ErrPredictionScoreInvalid
		}
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

func (r *postgresPredictionRepository) ListAll(ctx context.Context) ([]models.Prediction, error) {
	query := `
		SELECT user_email, match_id, home_score, away_score, created_at, updated_at
		FROM predictions
		ORDER BY user_email ASC, match_id ASC`
	return r.list(ctx, query)
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, email string) ([]models.Prediction, error) {
	query := `
		SELECT user_email, match_id, home_score, away_score, created_at, updated_at
		FROM predictions
		WHERE user_email = $1
		ORDER BY match_id ASC`
	return r.list(ctx, query, email)
}

func (r *postgresPredictionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		if scanErr := rows.Scan(&p.UserEmail, &p.MatchID, &p.HomeScore, &p.AwayScore, &p.CreatedAt, &p.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", scanErr)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction rows: %w", err)
	}
	return predictions, nil
}
