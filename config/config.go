package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды хранения снапшотов набора данных.
const (
	SnapshotBackendNone     = "none"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendR2       = "r2"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort       int
	JWTSecretKey     string
	OperatorName     string
	OperatorPassword string

	TournamentName   string
	RingsPerDivision map[string]int

	HistoryDepth     int
	AutosaveInterval time.Duration

	SnapshotBackend string
	DatabaseURL     string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

// Load загружает конфигурацию из переменных окружения. Опционально
// подгружает .env файл (удобно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	operatorName := os.Getenv("OPERATOR_NAME")
	if operatorName == "" {
		operatorName = "operator"
	}
	operatorPassword := os.Getenv("OPERATOR_PASSWORD")
	if operatorPassword == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD environment variable is not set")
	}

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	historyDepth, err := intFromEnv("HISTORY_DEPTH", 50)
	if err != nil {
		return nil, err
	}
	if historyDepth < 1 {
		return nil, fmt.Errorf("HISTORY_DEPTH must be positive, got %d", historyDepth)
	}

	autosaveSeconds, err := intFromEnv("AUTOSAVE_INTERVAL_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	ringsPerDivision, err := parseDivisionRings(os.Getenv("DIVISION_RINGS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:        port,
		JWTSecretKey:      jwtKey,
		OperatorName:      operatorName,
		OperatorPassword:  operatorPassword,
		TournamentName:    os.Getenv("TOURNAMENT_NAME"),
		RingsPerDivision:  ringsPerDivision,
		HistoryDepth:      historyDepth,
		AutosaveInterval:  time.Duration(autosaveSeconds) * time.Second,
		SnapshotBackend:   strings.ToLower(strings.TrimSpace(envOrDefault("SNAPSHOT_BACKEND", SnapshotBackendNone))),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
	}

	switch cfg.SnapshotBackend {
	case SnapshotBackendNone:
	case SnapshotBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when SNAPSHOT_BACKEND is %q", SnapshotBackendPostgres)
		}
	case SnapshotBackendR2:
		if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required when SNAPSHOT_BACKEND is %q", SnapshotBackendR2)
		}
	default:
		return nil, fmt.Errorf("invalid SNAPSHOT_BACKEND %q: must be one of none, postgres, r2", cfg.SnapshotBackend)
	}

	return cfg, nil
}

// parseDivisionRings разбирает строку вида "Black Belt:4,Color Belt:3" в
// количество физических рингов на дивизион.
func parseDivisionRings(raw string) (map[string]int, error) {
	out := make(map[string]int)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	for _, part := range strings.Split(raw, ",") {
		division, countStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("invalid DIVISION_RINGS entry %q: expected <division>:<count>", part)
		}
		division = strings.TrimSpace(division)
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count < 1 || division == "" {
			return nil, fmt.Errorf("invalid DIVISION_RINGS entry %q", part)
		}
		out[division] = count
	}
	return out, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return value, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
