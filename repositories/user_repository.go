package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateScore(ctx context.Context, email string, points, exactMatches int) error
	UpdateSelectedChampion(ctx context.Context, email string, champion *string) error
	UpdateAvatar(ctx context.Context, email string, avatarKey *string) error
	UpsertAccount(ctx context.Context, exec SQLExecutor, user *models.User) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `email, name, country, password_hash, role, points, exact_matches, selected_champion, avatar_key, created_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, country, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING points, exact_matches, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.Name,
		user.Country,
		user.PasswordHash,
		user.Role,
	).Scan(&user.Points, &user.ExactMatches, &user.CreatedAt)
	if err != nil {
		if code, _ := pqErrorCode(err); code == pqUniqueViolation {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return user, nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC, email ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", scanErr)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) UpdateScore(ctx context.Context, email string, points, exactMatches int) error {
	query := `UPDATE users SET points = $1, exact_matches = $2 WHERE email = $3`
	result, err := r.db.ExecContext(ctx, query, points, exactMatches, email)
	if err != nil {
		return fmt.Errorf("failed to update score for %s: %w", email, err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateSelectedChampion(ctx context.Context, email string, champion *string) error {
	query := `UPDATE users SET selected_champion = $1 WHERE email = $2`
	result, err := r.db.ExecContext(ctx, query, champion, email)
	if err != nil {
		return fmt.Errorf("failed to update champion pick for %s: %w", email, err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateAvatar(ctx context.Context, email string, avatarKey *string) error {
	query := `UPDATE users SET avatar_key = $1 WHERE email = $2`
	result, err := r.db.ExecContext(ctx, query, avatarKey, email)
	if err != nil {
		return fmt.Errorf("failed to update avatar for %s: %w", email, err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// UpsertAccount creates the account or refreshes its credentials, role and
// profile. Scores and the champion pick are left untouched.
func (r *postgresUserRepository) UpsertAccount(ctx context.Context, exec SQLExecutor, user *models.User) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO users (email, name, country, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role
		RETURNING points, exact_matches, created_at`

	err := exec.QueryRowContext(ctx, query,
		user.Email,
		user.Name,
		user.Country,
		user.PasswordHash,
		user.Role,
	).Scan(&user.Points, &user.ExactMatches, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", user.Email, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.Email,
		&user.Name,
		&user.Country,
		&user.PasswordHash,
		&user.Role,
		&user.Points,
		&user.ExactMatches,
		&user.SelectedChampion,
		&user.AvatarKey,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
