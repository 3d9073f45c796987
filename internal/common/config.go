package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Logging     LoggingConfig    `toml:"logging"`
	Oracle      OracleConfig     `toml:"oracle"`
	Gemini      GeminiConfig     `toml:"gemini"`
	Claude      ClaudeConfig     `toml:"claude"`
	Generation  GenerationConfig `toml:"generation"`
	Export      ExportConfig     `toml:"export"`
	Storage     StorageConfig    `toml:"storage"`
	History     HistoryConfig    `toml:"history"`
	WebSocket   WebSocketConfig  `toml:"websocket"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
	Dir    string   `toml:"dir"`    // Log file directory; empty uses ./logs beside the executable
}

// OracleProvider represents the AI provider used to answer generation prompts
type OracleProvider string

const (
	// OracleProviderGemini uses Google Gemini with Google Search grounding
	OracleProviderGemini OracleProvider = "gemini"
	// OracleProviderClaude uses Anthropic Claude (no citation metadata)
	OracleProviderClaude OracleProvider = "claude"
)

// OracleConfig controls how the AI service is called
type OracleConfig struct {
	Provider  OracleProvider `toml:"provider"`   // "gemini" or "claude" (default: "gemini")
	Timeout   string         `toml:"timeout"`    // Per-call timeout; empty disables the local timeout
	RateLimit string         `toml:"rate_limit"` // Minimum interval between calls (default: "4s"); empty or "0" disables pacing
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`       // default: "gemini-2.5-flash"
	Temperature float32 `toml:"temperature"` // 0 leaves the model default
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// GenerationConfig contains Q&A generation behaviour
type GenerationConfig struct {
	MaxQuestions  int  `toml:"max_questions"`  // Upper bound for numQuestions (default: 20)
	EnrichSources bool `toml:"enrich_sources"` // Run the best-effort source summary pass (default: true)
}

// ExportConfig controls PDF rendering
type ExportConfig struct {
	FontPath string `toml:"font_path"` // TrueType font for text outside cp1252; empty uses the core font
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// HistoryConfig controls persistence of generated results
type HistoryConfig struct {
	Enabled       bool   `toml:"enabled"`
	MaxAge        string `toml:"max_age"`        // Results older than this are pruned (default: "720h")
	PruneSchedule string `toml:"prune_schedule"` // Standard 5-field cron schedule (default: hourly)
}

// WebSocketConfig contains configuration for the status event feed
type WebSocketConfig struct {
	Enabled bool `toml:"enabled"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Oracle: OracleConfig{
			Provider:  OracleProviderGemini,
			Timeout:   "",   // No local timeout, rely on the transport
			RateLimit: "4s", // 15 RPM free tier
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 8192,
		},
		Generation: GenerationConfig{
			MaxQuestions:  20,
			EnrichSources: true,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		History: HistoryConfig{
			Enabled:       true,
			MaxAge:        "720h",
			PruneSchedule: "0 * * * *",
		},
		WebSocket: WebSocketConfig{
			Enabled: true,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges with existing values
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("QANDA_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("QANDA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("QANDA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("QANDA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dir := os.Getenv("QANDA_LOG_DIR"); dir != "" {
		config.Logging.Dir = dir
	}
	if output := os.Getenv("QANDA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Oracle configuration
	if provider := os.Getenv("QANDA_ORACLE_PROVIDER"); provider != "" {
		config.Oracle.Provider = OracleProvider(strings.ToLower(provider))
	}
	if timeout := os.Getenv("QANDA_ORACLE_TIMEOUT"); timeout != "" {
		config.Oracle.Timeout = timeout
	}
	if rateLimit := os.Getenv("QANDA_ORACLE_RATE_LIMIT"); rateLimit != "" {
		config.Oracle.RateLimit = rateLimit
	}

	// Gemini: QANDA_GEMINI_API_KEY, then the SDK conventions
	if apiKey := firstEnv("QANDA_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("QANDA_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}

	// Claude
	if apiKey := firstEnv("QANDA_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if model := os.Getenv("QANDA_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	// Generation
	if maxQuestions := os.Getenv("QANDA_GENERATION_MAX_QUESTIONS"); maxQuestions != "" {
		if mq, err := strconv.Atoi(maxQuestions); err == nil {
			config.Generation.MaxQuestions = mq
		}
	}
	if enrich := os.Getenv("QANDA_GENERATION_ENRICH_SOURCES"); enrich != "" {
		if e, err := strconv.ParseBool(enrich); err == nil {
			config.Generation.EnrichSources = e
		}
	}

	if fontPath := os.Getenv("QANDA_EXPORT_FONT_PATH"); fontPath != "" {
		config.Export.FontPath = fontPath
	}

	// Storage and history
	if badgerPath := os.Getenv("QANDA_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if enabled := os.Getenv("QANDA_HISTORY_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.History.Enabled = e
		}
	}
	if maxAge := os.Getenv("QANDA_HISTORY_MAX_AGE"); maxAge != "" {
		config.History.MaxAge = maxAge
	}
}

// firstEnv returns the value of the first non-empty environment variable
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ApplyFlagOverrides applies command-line flag overrides to config (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
