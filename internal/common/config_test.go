package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, OracleProviderGemini, config.Oracle.Provider)
	assert.Equal(t, "4s", config.Oracle.RateLimit)
	assert.Empty(t, config.Oracle.Timeout)
	assert.Equal(t, 20, config.Generation.MaxQuestions)
	assert.True(t, config.Generation.EnrichSources)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, "0 * * * *", config.History.PruneSchedule)
}

func TestLoadFromFiles_MergesInOrder(t *testing.T) {
	base := writeConfig(t, "base.toml", `
[server]
port = 9000
host = "0.0.0.0"

[generation]
max_questions = 10
`)
	override := writeConfig(t, "override.toml", `
[server]
port = 9100

[oracle]
provider = "claude"
`)

	config, err := LoadFromFiles(base, "", override)
	require.NoError(t, err)

	assert.Equal(t, 9100, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 10, config.Generation.MaxQuestions)
	assert.Equal(t, OracleProviderClaude, config.Oracle.Provider)
	// Untouched sections keep defaults
	assert.Equal(t, "720h", config.History.MaxAge)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := writeConfig(t, "bad.toml", "[server\nport = ")
	_, err = LoadFromFiles(bad)
	assert.Error(t, err)
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("QANDA_SERVER_PORT", "7000")
	t.Setenv("QANDA_LOG_OUTPUT", " file , ,stdout")
	t.Setenv("QANDA_ORACLE_PROVIDER", "CLAUDE")
	t.Setenv("QANDA_GENERATION_ENRICH_SOURCES", "false")
	t.Setenv("QANDA_HISTORY_ENABLED", "not-a-bool")
	t.Setenv("QANDA_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	file := writeConfig(t, "qanda.toml", "[server]\nport = 9000\n")
	config, err := LoadFromFiles(file)
	require.NoError(t, err)

	assert.Equal(t, 7000, config.Server.Port)
	assert.Equal(t, []string{"file", "stdout"}, config.Logging.Output)
	assert.Equal(t, OracleProviderClaude, config.Oracle.Provider)
	assert.False(t, config.Generation.EnrichSources)
	assert.True(t, config.History.Enabled, "unparseable bool keeps the default")
	assert.Equal(t, "google-key", config.Gemini.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)

	ApplyFlagOverrides(config, 9999, "127.0.0.1")
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
}

func TestParseOptionalDuration(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{" 4s ", 4 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"-1s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseOptionalDuration(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
