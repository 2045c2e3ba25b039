package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manuelherrera22/Quinela/config"
	"github.com/Manuelherrera22/Quinela/db"
	"github.com/Manuelherrera22/Quinela/handlers"
	"github.com/Manuelherrera22/Quinela/metrics"
	"github.com/Manuelherrera22/Quinela/realtime"
	"github.com/Manuelherrera22/Quinela/repositories"
	api "github.com/Manuelherrera22/Quinela/routes"
	"github.com/Manuelherrera22/Quinela/services"
	"github.com/Manuelherrera22/Quinela/storage"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
)

func main() {
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logLevel.Set(cfg.LogLevel)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("lambda", cfg.LambdaMode))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	applied, err := db.Migrate(ctx, dbConn)
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", slog.Any("versions", applied))
	}

	var uploader storage.FileUploader
	if cfg.Storage.Enabled() {
		endpoint := cfg.Storage.Endpoint
		if endpoint == "" && cfg.Storage.R2AccountID != "" {
			endpoint = storage.R2Endpoint(cfg.Storage.R2AccountID)
		}
		uploader, err = storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			UsePathStyle:    cfg.Storage.UsePathStyle,
		})
		if err != nil {
			logger.Error("failed to initialize avatar storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("avatar storage initialized", slog.String("bucket", cfg.Storage.Bucket))
	} else {
		logger.Warn("avatar storage not configured, uploads are disabled")
	}

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	recorder := metrics.NewRecorder()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	settingsRepo := repositories.NewPostgresSettingsRepository(dbConn)

	scoringService := services.NewScoringService(matchRepo, predictionRepo, userRepo, settingsRepo, hub, recorder, logger)
	authService := services.NewAuthService(userRepo)
	matchService := services.NewMatchService(matchRepo, scoringService, hub, recorder, logger, time.Now)
	predictionService := services.NewPredictionService(predictionRepo, matchRepo, time.Now)
	settingsService := services.NewSettingsService(settingsRepo, scoringService, hub, logger)
	userService := services.NewUserService(userRepo, matchRepo, predictionRepo, uploader, cfg.ChampionLockAt, logger, time.Now)
	leaderboardService := services.NewLeaderboardService(userRepo, uploader)

	go runMatchLocker(ctx, matchService, cfg.MatchLockInterval, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.JWTTTL),
		User:        handlers.NewUserHandler(userService),
		Match:       handlers.NewMatchHandler(matchService),
		Prediction:  handlers.NewPredictionHandler(predictionService),
		Admin:       handlers.NewAdminHandler(matchService, settingsService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Settings:    handlers.NewSettingsHandler(settingsService, userService),
		WebSocket:   handlers.NewWebSocketHandler(hub, logger),
		Health:      handlers.NewHealthHandler(dbConn),
		Metrics:     recorder.Handler(),
	}, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins)
	logger.Info("routes configured")

	if cfg.LambdaMode {
		logger.Info("starting in lambda mode")
		adapter := httpadapter.New(router)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stop()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// runMatchLocker closes predictions on kicked-off matches once at startup and
// then on every tick until ctx is done.
func runMatchLocker(ctx context.Context, matchService services.MatchService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("match lock job started", slog.Duration("interval", interval))

	lock := func() {
		if _, err := matchService.LockStartedMatches(ctx); err != nil && ctx.Err() == nil {
			logger.Error("match lock job failed", slog.Any("error", err))
		}
	}

	lock()
	for {
		select {
		case <-ctx.Done():
			logger.Info("match lock job stopped")
			return
		case <-ticker.C:
			lock()
		}
	}
}
