package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type LogConfig struct {
	File      string
	Level     string
	FileCount int
	FileSize  int
	KeepDays  int
	Console   bool
}

type ServerConfig struct {
	Addr string
}

type ResolveConfig struct {
	CacheSize    int
	CacheTTL     time.Duration
	BatchWorkers int
	Strict       bool
}

type Config struct {
	Log     LogConfig
	Server  ServerConfig
	Resolve ResolveConfig
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Log: LogConfig{
			File:      getEnv("CHIFFRE_LOG_FILE", ""),
			Level:     strings.ToLower(getEnv("CHIFFRE_LOG_LEVEL", "info")),
			FileCount: getEnvInt("CHIFFRE_LOG_FILE_COUNT", 5),
			FileSize:  getEnvInt("CHIFFRE_LOG_FILE_SIZE", 100),
			KeepDays:  getEnvInt("CHIFFRE_LOG_KEEP_DAYS", 7),
			Console:   getEnvBool("CHIFFRE_LOG_CONSOLE", true),
		},
		Server: ServerConfig{
			Addr: getEnv("CHIFFRE_HTTP_ADDR", "0.0.0.0:8080"),
		},
		Resolve: ResolveConfig{
			CacheSize:    getEnvInt("CHIFFRE_CACHE_SIZE", 4096),
			CacheTTL:     time.Duration(getEnvInt("CHIFFRE_CACHE_TTL_SECONDS", 600)) * time.Second,
			BatchWorkers: getEnvInt("CHIFFRE_BATCH_WORKERS", defaultWorkerCount()),
			Strict:       getEnvBool("CHIFFRE_STRICT", false),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("CHIFFRE_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Resolve.CacheSize < 0 {
		return fmt.Errorf("CHIFFRE_CACHE_SIZE must not be negative")
	}
	if c.Resolve.CacheTTL < 0 {
		return fmt.Errorf("CHIFFRE_CACHE_TTL_SECONDS must not be negative")
	}
	if c.Resolve.BatchWorkers < 1 {
		return fmt.Errorf("CHIFFRE_BATCH_WORKERS must be at least 1")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("CHIFFRE_HTTP_ADDR is required")
	}
	return nil
}

// defaultWorkerCount bounds batch parallelism by the CPU count.
func defaultWorkerCount() int {
	return min(max(runtime.NumCPU(), 1), 8)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
