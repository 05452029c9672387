package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	cases := map[string]bool{
		"":             true,
		"dev":          true,
		"development":  true,
		"  Local  ":    true,
		"TEST":         true,
		"testing":      true,
		"prod":         false,
		" Production ": false,
		"staging":      false,
		"qa":           false,
	}

	for env, allowed := range cases {
		t.Run(env, func(t *testing.T) {
			err := ValidateAutoMigrateAllowed(env)
			if allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, "--auto-migrate is not allowed")
		})
	}
}

func TestInitializeEnvFile_LoadsEnvFileWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitlist.env")
	require.NoError(t, os.WriteFile(path, []byte("WAITLIST_TEST_FROM_FILE=file\nWAITLIST_TEST_PRESET=file\n"), 0o600))

	t.Setenv(EnvFileKey, path)
	t.Setenv(SkipDotenvKey, "")
	t.Setenv("WAITLIST_TEST_PRESET", "process")
	t.Cleanup(func() { os.Unsetenv("WAITLIST_TEST_FROM_FILE") })

	InitializeEnvFile(log.NewDiscardLogger())

	assert.Equal(t, "file", os.Getenv("WAITLIST_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("WAITLIST_TEST_PRESET"))
}

func TestInitializeEnvFile_Skip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skip.env")
	require.NoError(t, os.WriteFile(path, []byte("WAITLIST_TEST_SKIPPED=yes\n"), 0o600))

	t.Setenv(EnvFileKey, path)
	t.Setenv(SkipDotenvKey, "true")

	InitializeEnvFile(log.NewDiscardLogger())

	_, ok := os.LookupEnv("WAITLIST_TEST_SKIPPED")
	assert.False(t, ok)
}

func TestGetValueFromEnvironmentVariable(t *testing.T) {
	t.Setenv("WAITLIST_TEST_EMPTY", "")

	assert.Equal(t, "", GetValueFromEnvironmentVariable("WAITLIST_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetValueFromEnvironmentVariable("WAITLIST_TEST_UNSET_KEY", "fallback"))
}
