package api

import (
	"os"
	"strconv"
	"time"
)

const defaultAddress = ":8080"

type Config struct {
	// Address is the listen address of the API server.
	Address string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// RequestTimeout bounds handler execution, search included.
	RequestTimeout time.Duration
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	requestTimeout := 30
	if v := os.Getenv("VEKTOR_API_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			requestTimeout = n
		}
	}
	return Config{
		Address:         getenvDefault("VEKTOR_API_ADDRESS", defaultAddress),
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RequestTimeout:  time.Duration(requestTimeout) * time.Second,
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
