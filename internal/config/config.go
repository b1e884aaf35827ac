// Package config loads client settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend address used when PDFQA_API_URL is unset.
const DefaultAPIURL = "http://localhost:8000"

// DefaultFakeAddr is the listen address of the development backend.
const DefaultFakeAddr = ":8000"

// Environment variable names.
const (
	EnvAPIURL   = "PDFQA_API_URL"
	EnvLogFile  = "PDFQA_LOG_FILE"
	EnvDebug    = "PDFQA_DEBUG"
	EnvFakeAddr = "PDFQA_FAKE_ADDR"
)

// Config holds the client configuration.
type Config struct {
	APIURL   string
	LogFile  string
	Debug    bool
	FakeAddr string // used only by pdfqa-fakebackend
}

// Load reads an optional .env file from the working directory, then the
// process environment. Values already in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:   strings.TrimSuffix(getEnv(EnvAPIURL, DefaultAPIURL), "/"),
		LogFile:  getEnv(EnvLogFile, DefaultLogFile()),
		Debug:    getEnvAsBool(EnvDebug, false),
		FakeAddr: getEnv(EnvFakeAddr, DefaultFakeAddr),
	}
}

// DefaultLogFile returns the log path under the user cache directory.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pdfqa", "pdfqa.log")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
