// Package config loads service settings. Listener and storage settings are
// read once at startup; provider and container settings are read on every
// request through Source so that changes apply without a restart.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingStorageConnection is returned by LoadStorage when no object
// store connection string is configured.
var ErrMissingStorageConnection = errors.New("config: STORAGE_CONNECTION_STRING is not set")

const defaultAllowedOrigins = "http://localhost:3000,http://localhost:5173"

// Server holds listener settings.
type Server struct {
	Port           string
	AllowedOrigins []string
}

// Storage holds object store settings.
type Storage struct {
	ConnectionString string
	DefaultContainer string
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using process environment only", "err", err)
	}
}

// LoadServer reads listener settings. portKey names the env var holding the
// port so that each binary can listen on its own default.
func LoadServer(portKey, defaultPort string) Server {
	return Server{
		Port:           getEnv(portKey, defaultPort),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)),
	}
}

// LoadStorage reads the object store settings. A missing connection string
// is a configuration error the caller should treat as fatal.
func LoadStorage() (Storage, error) {
	conn := strings.TrimSpace(os.Getenv("STORAGE_CONNECTION_STRING"))
	if conn == "" {
		return Storage{}, ErrMissingStorageConnection
	}
	return Storage{
		ConnectionString: conn,
		DefaultContainer: getEnv(KeyContainerDefault, "uploads"),
	}, nil
}

// ParamPrefix returns the SSM parameter prefix, or "" when SSM lookups are
// disabled.
func ParamPrefix() string {
	return strings.TrimSpace(os.Getenv("PARAM_PREFIX"))
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
