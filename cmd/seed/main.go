// Command seed prepares a database: it applies migrations, inserts the
// tournament fixtures that are not there yet, ensures the settings rows and
// creates or refreshes the administrator account.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Manuelherrera22/Quinela/config"
	"github.com/Manuelherrera22/Quinela/db"
	"github.com/Manuelherrera22/Quinela/fixtures"
	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/utils"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed complete")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD environment variable is not set")
	}
	if !utils.IsValidEmail(cfg.Admin.Email) {
		return fmt.Errorf("ADMIN_EMAIL %q is not a valid address", cfg.Admin.Email)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	applied, err := db.Migrate(ctx, dbConn)
	if err != nil {
		return err
	}
	logger.Info("migrations checked", slog.Int("applied", len(applied)))

	matches, err := fixtures.Matches()
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.User{
		Email:        cfg.Admin.Email,
		Name:         cfg.Admin.Name,
		Country:      cfg.Admin.Country,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	inserted, err := seed(ctx, dbConn, matches, admin)
	if err != nil {
		return err
	}
	logger.Info("fixtures seeded",
		slog.Int("inserted", inserted),
		slog.Int("already_present", len(matches)-inserted),
	)
	logger.Info("administrator account ready", slog.String("email", admin.Email))
	return nil
}

// seed runs every write in one transaction so a failure leaves nothing half-applied.
func seed(ctx context.Context, dbConn *sql.DB, matches []models.Match, admin *models.User) (int, error) {
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	settingsRepo := repositories.NewPostgresSettingsRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)

	tx, err := dbConn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for i := range matches {
		created, err := matchRepo.CreateIfAbsent(ctx, tx, &matches[i])
		if err != nil {
			return 0, fmt.Errorf("insert match %s: %w", matches[i].ID, err)
		}
		if created {
			inserted++
		}
	}

	if err := settingsRepo.EnsureDefaults(ctx, tx); err != nil {
		return 0, err
	}
	if err := userRepo.UpsertAccount(ctx, tx, admin); err != nil {
		return 0, fmt.Errorf("upsert admin account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed transaction: %w", err)
	}
	return inserted, nil
}
