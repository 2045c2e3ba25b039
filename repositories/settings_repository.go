package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
)

type SettingsRepository interface {
	GetChampion(ctx context.Context) (*string, error)
	SetChampion(ctx context.Context, champion *string) error
	EnsureDefaults(ctx context.Context, exec SQLExecutor) error
}

type postgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

// GetChampion returns nil when no champion has been declared.
func (r *postgresSettingsRepository) GetChampion(ctx context.Context) (*string, error) {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, models.SettingChampion).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read champion setting: %w", err)
	}
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	return &value.String, nil
}

func (r *postgresSettingsRepository) SetChampion(ctx context.Context, champion *string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, models.SettingChampion, champion); err != nil {
		return fmt.Errorf("failed to write champion setting: %w", err)
	}
	return nil
}

func (r *postgresSettingsRepository) EnsureDefaults(ctx context.Context, exec SQLExecutor) error {
	if exec == nil {
		exec = r.db
	}
	query := `INSERT INTO settings (key, value) VALUES ($1, NULL) ON CONFLICT (key) DO NOTHING`
	if _, err := exec.ExecContext(ctx, query, models.SettingChampion); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
