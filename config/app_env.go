package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	EnvFileKey = "ENV_FILE"
	// SkipDotenvKey disables .env loading entirely, e.g. in containers.
	SkipDotenvKey = "SKIP_DOTENV"
)

// Environments in which the server may create tables on start.
var devEnvironments = []string{"", "dev", "development", "local", "test", "testing"}

// InitializeEnvFile loads ENV_FILE, or .env when unset. Variables already in
// the process environment win over the file.
func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv(SkipDotenvKey) == "true" {
		logger.Info("Skipping env file load", "reason", SkipDotenvKey+"=true")
		return
	}

	path := strings.TrimSpace(os.Getenv(EnvFileKey))
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("No env file found, using process environment", "path", path)
			return
		}
		logger.Warn("Failed to load env file", "path", path, "error", err.Error())
		return
	}

	logger.Info("Environment loaded from file", "path", path)
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetAppEnv() string {
	return normalizeEnv(os.Getenv(AppEnvKey))
}

func normalizeEnv(env string) string {
	return strings.ToLower(strings.TrimSpace(env))
}

// ValidateAutoMigrateAllowed rejects --auto-migrate outside development-like
// environments; production schemas go through the migrate command.
func ValidateAutoMigrateAllowed(appEnv string) error {
	env := normalizeEnv(appEnv)
	if slices.Contains(devEnvironments, env) {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run the migrate command instead", AppEnvKey, env)
}
