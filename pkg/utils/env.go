package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetEnvIntOrDefault returns defaultValue when the variable is unset, not an
// integer, or not positive.
func GetEnvIntOrDefault(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultValue
	}

	return n
}

// GetEnvDurationOrDefault accepts Go durations ("45s") or a bare number of seconds.
func GetEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}

	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}

// GetEnvBoolOrDefault returns defaultValue when the variable is unset or not a
// strconv.ParseBool value.
func GetEnvBoolOrDefault(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return b
}
