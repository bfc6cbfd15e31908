package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings, read from INTERVIEW_* environment
// variables. Interview scripts (questions, keywords, closings) live in a
// separate optional YAML file, see dialogue.LoadFlows.
type Config struct {
	Port string

	// LLMProvider selects the text-generation backend: "mock", "groq" or
	// "gemini".
	LLMProvider string

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	GCPProjectID string
	GCPLocation  string
	GeminiModel  string

	// GenerateTimeout bounds a single LLM call. The voice channel itself
	// stops listening after a few seconds, so generation must not exceed it.
	GenerateTimeout time.Duration

	SessionBackend string // "memory" or "redis"
	RedisAddr      string
	RedisTTL       time.Duration

	TranscriptBackend string // "file" or "firestore"
	TranscriptDir     string

	GreenAPIInstanceID string
	GreenAPIToken      string
	GreenAPIBaseURL    string

	// ScriptPath optionally points to a YAML file overriding the built-in
	// interview flows.
	ScriptPath string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("INTERVIEW_PORT", "3000"),

		LLMProvider: getEnv("INTERVIEW_LLM_PROVIDER", "mock"),

		GroqAPIKey:  getEnv("INTERVIEW_GROQ_API_KEY", ""),
		GroqModel:   getEnv("INTERVIEW_GROQ_MODEL", "llama3-8b-8192"),
		GroqBaseURL: getEnv("INTERVIEW_GROQ_BASE_URL", "https://api.groq.com/openai/v1"),

		GCPProjectID: getEnv("INTERVIEW_GCP_PROJECT", ""),
		GCPLocation:  getEnv("INTERVIEW_GCP_LOCATION", "us-central1"),
		GeminiModel:  getEnv("INTERVIEW_GEMINI_MODEL", "gemini-2.5-flash"),

		GenerateTimeout: time.Duration(getIntEnv("INTERVIEW_GENERATE_TIMEOUT_SECONDS", 10)) * time.Second,

		SessionBackend: getEnv("INTERVIEW_SESSION_BACKEND", "memory"),
		RedisAddr:      getEnv("INTERVIEW_REDIS_ADDR", "localhost:6379"),
		RedisTTL:       time.Duration(getIntEnv("INTERVIEW_REDIS_TTL_HOURS", 24)) * time.Hour,

		TranscriptBackend: getEnv("INTERVIEW_TRANSCRIPT_BACKEND", "file"),
		TranscriptDir:     getEnv("INTERVIEW_TRANSCRIPT_DIR", "."),

		GreenAPIInstanceID: getEnv("INTERVIEW_GREENAPI_INSTANCE_ID", ""),
		GreenAPIToken:      getEnv("INTERVIEW_GREENAPI_TOKEN", ""),
		GreenAPIBaseURL:    getEnv("INTERVIEW_GREENAPI_BASE_URL", "https://api.greenapi.com"),

		ScriptPath: getEnv("INTERVIEW_SCRIPT_PATH", ""),
	}

	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			log.Fatal("INTERVIEW_GROQ_API_KEY must be set for the groq provider")
		}
	case "gemini":
		if cfg.GCPProjectID == "" {
			log.Fatal("INTERVIEW_GCP_PROJECT must be set for the gemini provider")
		}
	}

	return cfg
}
