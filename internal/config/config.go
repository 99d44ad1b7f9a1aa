package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath              string
	ServerPort          string
	LogLevel            string
	JWTSecret           string
	TokenTTL            time.Duration
	ScoreModel          string
	CombinationLimit    int
	CombinationCacheTTL time.Duration
	AllowedOrigins      []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "teamdraft.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ScoreModel:     getEnv("SCORE_MODEL", "ledger"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CombinationCacheTTL, err = getEnvDuration("COMBINATION_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CombinationLimit, err = getEnvInt("COMBINATION_LIMIT", 10); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CombinationLimit <= 0 {
		return nil, fmt.Errorf("COMBINATION_LIMIT must be positive, got %d", cfg.CombinationLimit)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("score_model", cfg.ScoreModel).
		Int("combination_limit", cfg.CombinationLimit).
		Dur("combination_cache_ttl", cfg.CombinationCacheTTL).
		Dur("token_ttl", cfg.TokenTTL).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("configuration loaded")

	return cfg, nil
}

// Client is the configuration of the draftctl command line client.
type Client struct {
	APIURL      string
	SessionFile string
}

func LoadClient() Client {
	_ = godotenv.Load()
	return Client{
		APIURL:      strings.TrimRight(getEnv("DRAFT_API_URL", "http://localhost:8080"), "/"),
		SessionFile: getEnv("DRAFT_SESSION_FILE", defaultSessionFile()),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".draftctl.json"
	}
	return filepath.Join(dir, "draftctl", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var Module = fx.Provide(Load)
