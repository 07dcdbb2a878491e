package config

import (
	"os"
	"strconv"
)

type Config struct {
	GoogleApiKey string
	TavilyAPIKey string
	BraveAPIKey  string
	DatabaseURL  string

	ReasoningModel string
	Port           string

	MaxIterations       int
	MaxSources          int
	ConfidenceThreshold float64
	EnableRefinement    bool
	SearchTimeRange     string
}

func Load() *Config {
	return &Config{
		GoogleApiKey: getEnv("GOOGLE_API_KEY", ""),
		TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),
		BraveAPIKey:  getEnv("BRAVE_API_KEY", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		ReasoningModel: getEnv("REASONING_MODEL", "gemini-3-flash-preview"),
		Port:           getEnv("PORT", "8081"),

		MaxIterations:       getEnvAsInt("MAX_ITERATIONS", 5),
		MaxSources:          getEnvAsInt("MAX_SOURCES", 20),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.7),
		EnableRefinement:    getEnvAsBool("ENABLE_REFINEMENT", true),
		SearchTimeRange:     getEnv("SEARCH_TIME_RANGE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
