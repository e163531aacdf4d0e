// Package config loads runtime settings from the environment and an
// optional .env file
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the service and CLI settings
type Config struct {
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	LogLevel     string
	LogFormat    string
	Debug        bool
	BatchWorkers int
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		MaxBodyBytes: 20 << 20,
		LogLevel:     "info",
		LogFormat:    "json",
		Debug:        false,
		BatchWorkers: 4,
	}
}

// Load reads .env if present, then the UBL_* environment variables.
// Invalid values keep the default and log a warning.
func Load() *Config {
	_ = godotenv.Load()

	def := Default()
	return &Config{
		ListenAddr:   getEnv("UBL_LISTEN_ADDR", def.ListenAddr),
		ReadTimeout:  getEnvDuration("UBL_READ_TIMEOUT", def.ReadTimeout),
		WriteTimeout: getEnvDuration("UBL_WRITE_TIMEOUT", def.WriteTimeout),
		MaxBodyBytes: getEnvInt64("UBL_MAX_BODY_BYTES", def.MaxBodyBytes),
		LogLevel:     getEnv("UBL_LOG_LEVEL", def.LogLevel),
		LogFormat:    getEnv("UBL_LOG_FORMAT", def.LogFormat),
		Debug:        getEnvBool("UBL_DEBUG", def.Debug),
		BatchWorkers: getEnvInt("UBL_BATCH_WORKERS", def.BatchWorkers),
	}
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logrus.Warnf("%s=%q is not a positive int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		logrus.Warnf("%s=%q is not a positive int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.Warnf("%s=%q is not a bool, using default %t", key, v, def)
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logrus.Warnf("%s=%q is not a positive duration, using default %s", key, v, def)
		return def
	}
	return d
}
