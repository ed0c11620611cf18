package utils

import (
	"log"
	"os"
	"strconv"
)

// Typed environment readers. A missing variable yields the fallback; a value
// that fails to parse also yields the fallback, with a log line, so a typo in
// deployment config degrades to defaults instead of crashing startup.

func GetEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("env %s: %v, using fallback %d", key, err, fallback)
		return fallback
	}
	return parsed
}

func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("env %s: %v, using fallback %t", key, err, fallback)
		return fallback
	}
	return parsed
}

func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("env %s: %v, using fallback %g", key, err, fallback)
		return fallback
	}
	return parsed
}
