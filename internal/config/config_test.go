package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.DefaultLLMProvider)
	assert.Equal(t, dir, cfg.ConfigDir())

	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 8192, cfg.Gemini.MaxTokens)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.Endpoint)
	assert.Equal(t, 3, cfg.Ollama.MaxRetries)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "bugfix.log"), cfg.Logging.Output)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("BUGFIX_LLM_DEFAULT_PROVIDER", "ollama")
	t.Setenv("BUGFIX_OLLAMA_MODEL", "llama3")
	t.Setenv("BUGFIX_OLLAMA_TIMEOUT", "90s")
	t.Setenv("BUGFIX_GEMINI_TEMPERATURE", "0.7")
	t.Setenv("BUGFIX_LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.DefaultLLMProvider)
	assert.Equal(t, "llama3", cfg.Ollama.Model)
	assert.Equal(t, 90*time.Second, cfg.Ollama.Timeout)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvGeminiKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := LoadFromEnv(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)

	t.Setenv("BUGFIX_GEMINI_API_KEY", "bugfix-key")

	cfg, err = LoadFromEnv(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "bugfix-key", cfg.Gemini.APIKey, "the dedicated variable wins over the fallback")
}

func TestLoadFromEnvDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUGFIX_OLLAMA_MODEL=codestral\n"), 0644))

	// godotenv writes into the process environment
	t.Cleanup(func() { os.Unsetenv("BUGFIX_OLLAMA_MODEL") })

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "codestral", cfg.Ollama.Model)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.DefaultLLMProvider = "ollama"
		cfg.Ollama = OllamaConfig{
			Endpoint:   "http://localhost:11434",
			Model:      "gemma3",
			Timeout:    time.Minute,
			MaxRetries: 3,
			MaxTokens:  4096,
		}
		cfg.Logging = LoggingConfig{Level: "info", Format: "text", Output: "stderr"}
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := valid()
		cfg.DefaultLLMProvider = "openai"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty provider", func(t *testing.T) {
		cfg := valid()
		cfg.DefaultLLMProvider = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing ollama endpoint", func(t *testing.T) {
		cfg := valid()
		cfg.Ollama.Endpoint = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := valid()
		cfg.Logging.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid log format", func(t *testing.T) {
		cfg := valid()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("gemini defaults filled in when key is set", func(t *testing.T) {
		cfg := valid()
		cfg.Gemini.APIKey = "k"
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
		assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
		assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
		assert.Equal(t, 8192, cfg.Gemini.MaxTokens)
	})

	t.Run("gemini skipped without key", func(t *testing.T) {
		cfg := valid()
		cfg.Gemini.APIVersion = "v99"
		assert.NoError(t, cfg.Validate(), "Gemini settings are not validated when the provider is unconfigured")
	})

	t.Run("invalid gemini api version", func(t *testing.T) {
		cfg := valid()
		cfg.Gemini.APIKey = "k"
		cfg.Gemini.APIVersion = "v99"
		assert.Error(t, cfg.Validate())
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), "level %q", tt.input)
	}

	assert.Greater(t, int(ParseLogLevel("none")), int(slog.LevelError))
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	Set(nil)
	_, err := Get()
	assert.Error(t, err)

	cfg := New()
	Set(cfg)

	got, err := Get()
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
