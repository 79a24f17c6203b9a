package main

import (
	"os"
	"time"
)

type config struct {
	CoreURL         string        // Required: base URL of the core, e.g. http://localhost:3567
	APIKey          string        // Optional: static API key sent to the core
	Issuer          string        // Optional: required iss claim when set
	ClockSkew       time.Duration // Optional: expiry tolerance (default: 0)
	Timeout         time.Duration // Optional: overall deadline (default: 10s)
	CheckRevocation bool          // Optional: also ask the core whether the session is live
	Env             string        // Environment (dev, staging, prod) (default: dev)
	LogLevel        string        // Log level (debug, info, warn, error) (default: info)
	LogFormat       string        // Log format (json, text) (default: text)
}

func loadConfig() config {
	return config{
		CoreURL:         getEnvOrDefault("SESSIONKIT_CORE_URL", "http://localhost:3567"),
		APIKey:          os.Getenv("SESSIONKIT_API_KEY"),
		Issuer:          os.Getenv("SESSIONKIT_ISSUER"),
		ClockSkew:       getEnvDurationOrDefault("SESSIONKIT_CLOCK_SKEW", 0),
		Timeout:         getEnvDurationOrDefault("SESSIONKIT_TIMEOUT", 10*time.Second),
		CheckRevocation: os.Getenv("SESSIONKIT_CHECK_REVOCATION") == "true",
		Env:             getEnvOrDefault("ENV", "dev"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
