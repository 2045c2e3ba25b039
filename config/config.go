package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	JWTTTL             time.Duration
	ServerPort         int
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	MatchLockInterval  time.Duration
	// ChampionLockAt closes champion picks. When nil the earliest kickoff is used.
	ChampionLockAt *time.Time
	LambdaMode     bool
	Storage        StorageConfig
	Admin          AdminConfig
}

// StorageConfig describes an S3-compatible bucket for avatars. For Cloudflare
// R2 it is enough to set R2AccountID instead of Endpoint.
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
	R2AccountID     string
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" && s.AccessKeyID != "" && s.SecretAccessKey != "" && s.PublicBaseURL != ""
}

// AdminConfig is only read by the seed command.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
	Country  string
}

func Load() (*Config, error) {
	lambdaMode := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !lambdaMode {
		// a missing .env is fine, the environment may already be populated
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := envOrDefault("SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level, err := parseLogLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	var championLockAt *time.Time
	if raw := envOrDefault("CHAMPION_LOCK_AT", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAMPION_LOCK_AT (want RFC3339): %w", err)
		}
		championLockAt = &parsed
	}

	jwtTTL, err := durationEnvOrDefault("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	lockInterval, err := durationEnvOrDefault("MATCH_LOCK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	usePathStyle, err := boolEnvOrDefault("S3_USE_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		JWTTTL:             jwtTTL,
		ServerPort:         port,
		LogLevel:           level,
		CORSAllowedOrigins: listEnvOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MatchLockInterval:  lockInterval,
		ChampionLockAt:     championLockAt,
		LambdaMode:         lambdaMode,
		Storage: StorageConfig{
			Endpoint:        envOrDefault("S3_ENDPOINT", ""),
			Region:          envOrDefault("S3_REGION", "auto"),
			Bucket:          envOrDefault("S3_BUCKET", ""),
			AccessKeyID:     envOrDefault("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: envOrDefault("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   envOrDefault("S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:    usePathStyle,
			R2AccountID:     envOrDefault("R2_ACCOUNT_ID", ""),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(envOrDefault("ADMIN_EMAIL", "admin@quinela.com")),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Name:     envOrDefault("ADMIN_NAME", "Administrador"),
			Country:  envOrDefault("ADMIN_COUNTRY", "El Salvador"),
		},
	}

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}
