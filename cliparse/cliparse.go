package cliparse

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	AdminUsername string
	AdminPassword string
	SeedCount     int
	SortModels    bool
}

// LoadDotEnv loads variables from a .env file in the working directory.
// Variables already present in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
		return
	}
	slog.Info(".env file loaded")
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("sample-admin", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	// One-shot modes and site options
	fs.IntVar(&cfg.SeedCount, "seed", 0, "Create N fake author/question/choice chains and exit")
	fs.BoolVar(&cfg.SortModels, "sort-models", false, "Sort models in the app list by their declared rank")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.SeedCount < 0 {
		return Config{}, errors.New("seed count must not be negative")
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
		if cfg.AdminUsername == "" {
			cfg.AdminUsername = "admin"
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}
