package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchScoreInvalid = errors.New("match score violates constraints")
)

type MatchFilter struct {
	Stage  *models.MatchStage
	Group  *string
	Status *models.MatchStatus
}

type MatchRepository interface {
	CreateIfAbsent(ctx context.Context, exec SQLExecutor, match *models.Match) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	UpdateResult(ctx context.Context, id string, homeScore, awayScore int) (*models.Match, error)
	LockStarted(ctx context.Context, now time.Time) (int64, error)
	EarliestKickoff(ctx context.Context) (*time.Time, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, home_team, away_team, kickoff_at, stage, group_name, status, home_score, away_score`

// CreateIfAbsent inserts a fixture and reports whether a row was written.
// An existing fixture with the same id is left as it is.
func (r *postgresMatchRepository) CreateIfAbsent(ctx context.Context, exec SQLExecutor, match *models.Match) (bool, error) {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches (id, home_team, away_team, kickoff_at, stage, group_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	result, err := exec.ExecContext(ctx, query,
		match.ID,
		match.HomeTeam,
		match.AwayTeam,
		match.KickoffAt,
		match.Stage,
		match.Group,
		match.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := []interface{}{}
	addFilter := func(column string, value interface{}) {
		args = append(args, value)
		queryBuilder.WriteString(" AND " + column + " = $" + strconv.Itoa(len(args)))
	}
	if filter.Stage != nil {
		addFilter("stage", *filter.Stage)
	}
	if filter.Group != nil {
		addFilter("group_name", *filter.Group)
	}
	if filter.Status != nil {
		addFilter("status", *filter.Status)
	}
	queryBuilder.WriteString(" ORDER BY kickoff_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

// UpdateResult stores the final score and marks the match finished. It also
// serves corrections of an already finished match.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id string, homeScore, awayScore int) (*models.Match, error) {
	query := `
		UPDATE matches SET home_score = $1, away_score = $2, status = $3
		WHERE id = $4
		RETURNING ` + matchColumns

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, homeScore, awayScore, models.MatchStatusFinished, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		if code, _ := pqErrorCode(err); code == pqCheckViolation {
			return nil, ErrMatchScoreInvalid
		}
		return nil, fmt.Errorf("failed to update result of match %s: %w", id, err)
	}
	return match, nil
}

// LockStarted closes every open match whose kickoff is not after now and
// returns how many were closed.
func (r *postgresMatchRepository) LockStarted(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE matches SET status = $1 WHERE status = $2 AND kickoff_at <= $3`
	result, err := r.db.ExecContext(ctx, query, models.MatchStatusLocked, models.MatchStatusOpen, now)
	if err != nil {
		return 0, fmt.Errorf("failed to lock started matches: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}

// EarliestKickoff returns nil when there are no fixtures.
func (r *postgresMatchRepository) EarliestKickoff(ctx context.Context) (*time.Time, error) {
	var earliest sql.NullTime
	if err := r.db.QueryRowContext(ctx, `SELECT MIN(kickoff_at) FROM matches`).Scan(&earliest); err != nil {
		return nil, fmt.Errorf("failed to query earliest kickoff: %w", err)
	}
	if !earliest.Valid {
		return nil, nil
	}
	return &earliest.Time, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.KickoffAt,
		&match.Stage,
		&match.Group,
		&match.Status,
		&match.HomeScore,
		&match.AwayScore,
	)
	if err != nil {
		return nil, err
	}
	match.PopulateFlags()
	return &match, nil
}
