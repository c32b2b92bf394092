package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMFallbackModel    string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	DBPath              string
	ActsFile            string
	FeedbackLogPath     string
	QdrantURL           string
	QdrantCollection    string
	QdrantVectorSize    int
	SimilarityThreshold float64
	RetrievalK          int
	RedisURL            string
	APIPort             string
	CORSOrigins         []string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMModelName:       getEnv("LLM_MODEL", "llama3"),
		LLMFallbackModel:   getEnv("LLM_FALLBACK_MODEL", "llama3:8b-instruct-q4_K_M"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "ollama"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "bge-small-en-v1.5"),
		DBPath:             getEnv("DB_PATH", "./data/bharatlaw.db"),
		ActsFile:           getEnv("ACTS_FILE", "./data/cleaned_acts.jsonl"),
		FeedbackLogPath:    getEnv("FEEDBACK_LOG", "./data/feedback_log.jsonl"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "legal_assistant"),
		RedisURL:           getEnv("REDIS_URL", ""),
		APIPort:            getEnv("API_PORT", "8000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// Must match the output size of the embedding model; changing the model
	// means recreating the collection and re-indexing.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.75"), 64)
	if err != nil {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be a valid number: %w", err)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be between 0 and 1, got %v", threshold)
	}
	cfg.SimilarityThreshold = threshold

	k, err := strconv.Atoi(getEnv("RETRIEVAL_K", "5"))
	if err != nil {
		return nil, fmt.Errorf("RETRIEVAL_K must be a valid integer: %w", err)
	}
	if k < 1 || k > 20 {
		return nil, fmt.Errorf("RETRIEVAL_K must be between 1 and 20, got %d", k)
	}
	cfg.RetrievalK = k

	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
