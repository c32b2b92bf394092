package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"QDRANT_VECTOR_SIZE", "LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL", "LLM_FALLBACK_MODEL",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "DB_PATH", "ACTS_FILE", "FEEDBACK_LOG",
	"QDRANT_URL", "QDRANT_COLLECTION", "SIMILARITY_THRESHOLD", "RETRIEVAL_K", "REDIS_URL",
	"API_PORT", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every config variable for the duration of the test.
// getEnv treats an empty value as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// chdirTemp moves into a directory without a .env file so Load does not pick one up.
func chdirTemp(t *testing.T) {
	t.Helper()
	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults with required vector size",
			env:  map[string]string{"QDRANT_VECTOR_SIZE": "384"},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.QdrantVectorSize != 384 {
					t.Errorf("QdrantVectorSize = %d, want 384", cfg.QdrantVectorSize)
				}
				if cfg.LLMBaseURL != "http://localhost:11434" || cfg.LLMModelName != "llama3" {
					t.Errorf("unexpected LLM defaults: %s %s", cfg.LLMBaseURL, cfg.LLMModelName)
				}
				if cfg.LLMFallbackModel != "llama3:8b-instruct-q4_K_M" {
					t.Errorf("LLMFallbackModel = %q", cfg.LLMFallbackModel)
				}
				if cfg.EmbeddingModelName != "bge-small-en-v1.5" {
					t.Errorf("EmbeddingModelName = %q", cfg.EmbeddingModelName)
				}
				if cfg.QdrantCollection != "legal_assistant" {
					t.Errorf("QdrantCollection = %q", cfg.QdrantCollection)
				}
				if cfg.SimilarityThreshold != 0.75 {
					t.Errorf("SimilarityThreshold = %v, want 0.75", cfg.SimilarityThreshold)
				}
				if cfg.RetrievalK != 5 {
					t.Errorf("RetrievalK = %d, want 5", cfg.RetrievalK)
				}
				if cfg.APIPort != "8000" {
					t.Errorf("APIPort = %q, want 8000", cfg.APIPort)
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("log settings = %v %q", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.RedisURL != "" {
					t.Errorf("RedisURL should default to empty, got %q", cfg.RedisURL)
				}
				if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
					t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
				}
			},
		},
		{
			name:    "missing QDRANT_VECTOR_SIZE",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:    "invalid QDRANT_VECTOR_SIZE",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "invalid"},
			wantErr: true,
		},
		{
			name:    "zero QDRANT_VECTOR_SIZE",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "0"},
			wantErr: true,
		},
		{
			name:    "threshold above one",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384", "SIMILARITY_THRESHOLD": "1.5"},
			wantErr: true,
		},
		{
			name:    "threshold not a number",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384", "SIMILARITY_THRESHOLD": "high"},
			wantErr: true,
		},
		{
			name:    "retrieval k out of range",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384", "RETRIEVAL_K": "50"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384", "LOG_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384", "LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name: "custom values",
			env: map[string]string{
				"QDRANT_VECTOR_SIZE":   "768",
				"LLM_BASE_URL":         "http://custom:9090",
				"LLM_MODEL":            "mistral",
				"SIMILARITY_THRESHOLD": "0.6",
				"RETRIEVAL_K":          "3",
				"REDIS_URL":            "redis://localhost:6379/0",
				"LOG_LEVEL":            "debug",
				"LOG_FORMAT":           "JSON",
				"CORS_ORIGINS":         "http://a.example, ,http://b.example",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LLMBaseURL != "http://custom:9090" || cfg.LLMModelName != "mistral" {
					t.Errorf("LLM settings not applied: %s %s", cfg.LLMBaseURL, cfg.LLMModelName)
				}
				if cfg.EmbeddingBaseURL != "http://localhost:11434" {
					t.Errorf("embedding base URL should keep its own default, got %q", cfg.EmbeddingBaseURL)
				}
				if cfg.SimilarityThreshold != 0.6 || cfg.RetrievalK != 3 {
					t.Errorf("retrieval settings = %v %d", cfg.SimilarityThreshold, cfg.RetrievalK)
				}
				if cfg.RedisURL != "redis://localhost:6379/0" {
					t.Errorf("RedisURL = %q", cfg.RedisURL)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("log settings = %v %q", cfg.LogLevel, cfg.LogFormat)
				}
				if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.example" {
					t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	dbPath := filepath.Join(t.TempDir(), "nested", "db.db")
	t.Setenv("QDRANT_VECTOR_SIZE", "384")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	wd, _ := os.Getwd()
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte("QDRANT_VECTOR_SIZE=512\nRETRIEVAL_K=7\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv does not override variables that are already set, even to "".
	for _, key := range []string{"QDRANT_VECTOR_SIZE", "RETRIEVAL_K"} {
		orig, had := os.LookupEnv(key)
		_ = os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, orig)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.QdrantVectorSize != 512 || cfg.RetrievalK != 7 {
		t.Errorf("values from .env not applied: size=%d k=%d", cfg.QdrantVectorSize, cfg.RetrievalK)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
