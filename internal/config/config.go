// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, Load returns an error and
// the process exits. Components never read the environment mid-pipeline;
// they receive this struct once at construction.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for both binaries.
type Config struct {
	Port        string
	DatabaseURL string // optional; chat history is disabled when empty

	OpenAIAPIKey   string
	ExtractModel   string // enrichment completions
	ChatModel      string // retrieval answers
	EmbeddingModel string

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	BoardBaseURL string
	FetchDelay   time.Duration // hard minimum delay between scrape requests

	BatchSize     int // listings enriched per sequential batch
	MaxConcurrent int // extraction requests in flight within a batch
	LogResponses  int // raw model responses logged verbatim per run

	ChatTopK    int // >0 switches retrieval to top-k similarity search
	ChatWindow  int // documents pulled by the bulk scroll mode
	ChatTimeout time.Duration

	RawCSVPath      string
	EnrichedCSVPath string
	LogFilePath     string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	qdrantURL := os.Getenv("QDRANT_URL")
	if qdrantURL == "" {
		return nil, fmt.Errorf("QDRANT_URL is required")
	}

	fetchDelay, err := durationEnv("FETCH_DELAY", 3*time.Second)
	if err != nil {
		return nil, err
	}

	chatTimeout, err := durationEnv("CHAT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := intEnv("ENRICH_BATCH_SIZE", 20)
	if err != nil {
		return nil, err
	}

	maxConcurrent, err := intEnv("ENRICH_MAX_CONCURRENT", 5)
	if err != nil {
		return nil, err
	}

	logResponses, err := intEnv("ENRICH_LOG_RESPONSES", 3)
	if err != nil {
		return nil, err
	}

	chatTopK, err := intEnv("CHAT_TOP_K", 0)
	if err != nil {
		return nil, err
	}

	chatWindow, err := intEnv("CHAT_WINDOW", 100)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             stringEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:     apiKey,
		ExtractModel:     stringEnv("EXTRACT_MODEL", "gpt-3.5-turbo"),
		ChatModel:        stringEnv("CHAT_MODEL", "gpt-4o"),
		EmbeddingModel:   stringEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		QdrantURL:        qdrantURL,
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: stringEnv("QDRANT_COLLECTION", "job-listings"),
		BoardBaseURL:     stringEnv("BOARD_BASE_URL", "https://jobs.dou.ua"),
		FetchDelay:       fetchDelay,
		BatchSize:        batchSize,
		MaxConcurrent:    maxConcurrent,
		LogResponses:     logResponses,
		ChatTopK:         chatTopK,
		ChatWindow:       chatWindow,
		ChatTimeout:      chatTimeout,
		RawCSVPath:       stringEnv("RAW_CSV_PATH", "all_job_listings.csv"),
		EnrichedCSVPath:  stringEnv("ENRICHED_CSV_PATH", "processed_jobs.csv"),
		LogFilePath:      stringEnv("LOG_FILE_PATH", "job_parsing.log"),
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, s)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration like 3s, got %q", key, s)
	}
	return v, nil
}
