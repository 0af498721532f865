package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables.
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".bugfix")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default log path is in the config directory
	defaultLogPath := filepath.Join(configDir, "bugfix.log")

	// Use provided config file path or default
	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// Check if ENV_FILE_PATH is set to load from a custom .env file
	envFilePath := getEnvString("ENV_FILE_PATH", "")
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Try the config directory first, then the current directory
		if err := godotenv.Load(configFilePath); err != nil {
			_ = godotenv.Load() // Ignore errors if file doesn't exist
		}
	}

	cfg.DefaultLLMProvider = getEnvString("BUGFIX_LLM_DEFAULT_PROVIDER", "gemini")

	// Gemini Configuration
	cfg.Gemini = GeminiConfig{
		APIKey:            getEnvString("BUGFIX_GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		BaseURL:           getEnvString("BUGFIX_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		APIVersion:        getEnvString("BUGFIX_GEMINI_API_VERSION", "v1beta"),
		Model:             getEnvString("BUGFIX_GEMINI_MODEL", "gemini-1.5-flash"),
		Timeout:           getEnvDuration("BUGFIX_GEMINI_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("BUGFIX_GEMINI_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("BUGFIX_GEMINI_MAX_TOKENS", 8192),
		Temperature:       getEnvFloat("BUGFIX_GEMINI_TEMPERATURE", 0.2),
		RequestsPerMinute: getEnvInt("BUGFIX_GEMINI_RPM", 15),
		BurstLimit:        getEnvInt("BUGFIX_GEMINI_BURST", 1),
	}

	// Ollama Configuration
	cfg.Ollama = OllamaConfig{
		Endpoint:          getEnvString("BUGFIX_OLLAMA_ENDPOINT", "http://localhost:11434"),
		Model:             getEnvString("BUGFIX_OLLAMA_MODEL", "gemma3"),
		Timeout:           getEnvDuration("BUGFIX_OLLAMA_TIMEOUT", 600*time.Second),
		MaxRetries:        getEnvInt("BUGFIX_OLLAMA_MAX_RETRIES", 3),
		MaxTokens:         getEnvInt("BUGFIX_OLLAMA_MAX_TOKENS", 4096),
		Temperature:       getEnvFloat("BUGFIX_OLLAMA_TEMPERATURE", 0.2),
		RequestsPerMinute: getEnvInt("BUGFIX_OLLAMA_RPM", 0),
		BurstLimit:        getEnvInt("BUGFIX_OLLAMA_BURST", 1),
	}

	// Logging Configuration
	cfg.Logging = LoggingConfig{
		Level:      getEnvString("BUGFIX_LOG_LEVEL", "info"),
		Format:     getEnvString("BUGFIX_LOG_FORMAT", "text"),
		Output:     getEnvString("BUGFIX_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("BUGFIX_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("BUGFIX_LOG_TIME_FORMAT", time.RFC3339),
	}

	// Validate the configuration
	return cfg, cfg.Validate()
}
