package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage drivers accepted by --storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds all configuration settings for the application.
type Config struct {
	// View server settings
	ListenAddress string
	ListenPort    string
	RateLimit     float64 // Requests per second across all clients, 0 disables

	// Storage settings
	StorageDriver string
	DataFilePath  string
	SQLitePath    string
	RedisAddr     string
	RedisPrefix   string
	SaveInterval  time.Duration
	EnableBackup  bool

	// Catalog settings
	DeleteConfirmTTL time.Duration
	MaxImageWidth    uint

	EnvFile string
}

const (
	envPrefix = "SHAREBOX_"

	defaultAddress          = "127.0.0.1"
	defaultPort             = "8080"
	defaultRateLimit        = 20.0
	defaultStorageDriver    = StorageFile
	defaultDataFile         = "./beusharebox.json" // Relative to working dir
	defaultSQLitePath       = "./beusharebox.db"
	defaultRedisAddr        = "localhost:6379"
	defaultRedisPrefix      = ""
	defaultSaveInterval     = 0 * time.Second // Write-through
	defaultEnableBackup     = true
	defaultDeleteConfirmTTL = 5 * time.Minute
	defaultMaxImageWidth    = 800
	defaultEnvFile          = ".env"
)

// LoadConfig loads configuration from defaults, an optional .env file, environment
// variables and the given command-line arguments (without the program name).
// Flags take precedence over environment variables, which take precedence over
// .env values, which take precedence over defaults.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}

	// The .env file has to be loaded before any other env lookup, so its path is
	// picked out of the arguments ahead of the real parse.
	cfg.EnvFile = lookupEnvFile(args)
	loadEnvFile(cfg.EnvFile)

	fs := pflag.NewFlagSet("sharebox", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddress, "address", getEnv("LISTEN_ADDRESS", defaultAddress), "View server listen address (Env: SHAREBOX_LISTEN_ADDRESS)")
	fs.StringVar(&cfg.ListenPort, "port", getEnv("LISTEN_PORT", defaultPort), "View server listen port (Env: SHAREBOX_LISTEN_PORT)")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", getEnvFloat("RATE_LIMIT", defaultRateLimit), "Requests per second allowed on the view server, 0 disables (Env: SHAREBOX_RATE_LIMIT)")
	fs.StringVar(&cfg.StorageDriver, "storage", getEnv("STORAGE", defaultStorageDriver), "Storage backend: file, sqlite, redis or memory (Env: SHAREBOX_STORAGE)")
	fs.StringVar(&cfg.DataFilePath, "data-file", getEnv("DATA_FILE", defaultDataFile), "Path to the JSON data file for the file backend (Env: SHAREBOX_DATA_FILE)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", getEnv("SQLITE_PATH", defaultSQLitePath), "Path to the SQLite database for the sqlite backend (Env: SHAREBOX_SQLITE_PATH)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", getEnv("REDIS_ADDR", defaultRedisAddr), "Redis address for the redis backend (Env: SHAREBOX_REDIS_ADDR)")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", getEnv("REDIS_PREFIX", defaultRedisPrefix), "Prefix prepended to every Redis key (Env: SHAREBOX_REDIS_PREFIX)")
	saveIntervalStr := fs.String("save-interval", getEnv("SAVE_INTERVAL", defaultSaveInterval.String()), "Debounce interval for file saves, 0 writes through (Env: SHAREBOX_SAVE_INTERVAL)")
	fs.BoolVar(&cfg.EnableBackup, "enable-backup", getEnvBool("ENABLE_BACKUP", defaultEnableBackup), "Keep a .bak copy of the data file on every save (Env: SHAREBOX_ENABLE_BACKUP)")
	ttlStr := fs.String("delete-confirm-ttl", getEnv("DELETE_CONFIRM_TTL", defaultDeleteConfirmTTL.String()), "How long a delete confirmation token stays valid (Env: SHAREBOX_DELETE_CONFIRM_TTL)")
	fs.UintVar(&cfg.MaxImageWidth, "max-image-width", getEnvUint("MAX_IMAGE_WIDTH", defaultMaxImageWidth), "Uploaded images wider than this are downscaled (Env: SHAREBOX_MAX_IMAGE_WIDTH)")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Optional .env file read before the environment (Env: SHAREBOX_ENV_FILE)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg.SaveInterval = parseDuration("save-interval", *saveIntervalStr, defaultSaveInterval)
	cfg.DeleteConfirmTTL = parseDuration("delete-confirm-ttl", *ttlStr, defaultDeleteConfirmTTL)
	if cfg.DeleteConfirmTTL <= 0 {
		log.Printf("WARN: delete-confirm-ttl must be positive, got %s. Using default %s.", cfg.DeleteConfirmTTL, defaultDeleteConfirmTTL)
		cfg.DeleteConfirmTTL = defaultDeleteConfirmTTL
	}
	if cfg.RateLimit < 0 {
		log.Printf("WARN: rate-limit cannot be negative, got %v. Disabling rate limiting.", cfg.RateLimit)
		cfg.RateLimit = 0
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch cfg.StorageDriver {
	case StorageFile:
		abs, err := resolveDataPath("data-file", cfg.DataFilePath)
		if err != nil {
			return nil, err
		}
		cfg.DataFilePath = abs
	case StorageSQLite:
		abs, err := resolveDataPath("sqlite-path", cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		cfg.SQLitePath = abs
	case StorageRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, errors.New("redis storage selected but redis-addr is empty")
		}
	case StorageMemory:
		log.Printf("WARN: Memory storage selected. Catalog changes will be lost on exit.")
	default:
		return nil, fmt.Errorf("unknown storage driver '%s', expected file, sqlite, redis or memory", cfg.StorageDriver)
	}

	logConfiguration(cfg)

	return cfg, nil
}

// lookupEnvFile finds --env-file in args, falling back to SHAREBOX_ENV_FILE and the default.
func lookupEnvFile(args []string) string {
	pre := pflag.NewFlagSet("sharebox-env", pflag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	envFile := pre.String("env-file", getEnv("ENV_FILE", defaultEnvFile), "")
	_ = pre.Parse(args) // Everything except --env-file is validated by the real parse
	return *envFile
}

// loadEnvFile reads KEY=VALUE pairs without overriding variables already set.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("DEBUG: No env file at '%s'. Relying on the process environment.", path)
			return
		}
		log.Printf("WARN: Failed to load env file '%s': %v. Relying on the process environment.", path, err)
		return
	}
	log.Printf("INFO: Loaded environment overrides from %s", path)
}

// resolveDataPath makes path absolute and rejects directories.
func resolveDataPath(flagName, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not determine absolute path for %s '%s': %w", flagName, path, err)
	}
	// The file may not exist yet. It's created on first save.
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", fmt.Errorf("%s '%s' points to a directory, not a file", flagName, abs)
	}
	return abs, nil
}

func parseDuration(field, value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("WARN: Invalid %s duration '%s'. Using default %s. Error: %v", field, value, fallback, err)
		return fallback
	}
	return d
}

// getEnv retrieves SHAREBOX_<key> or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		return value
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// Recognizes "true", "1", "yes" (case-insensitive) as true.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		log.Printf("WARN: Invalid boolean value for environment variable %s%s: '%s'. Using default: %t", envPrefix, key, value, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return f
		}
		log.Printf("WARN: Invalid number for environment variable %s%s: '%s'. Using default: %v", envPrefix, key, value, fallback)
	}
	return fallback
}

func getEnvUint(key string, fallback uint) uint {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		if err == nil {
			return uint(n)
		}
		log.Printf("WARN: Invalid unsigned integer for environment variable %s%s: '%s'. Using default: %d", envPrefix, key, value, fallback)
	}
	return fallback
}

// logConfiguration prints the loaded configuration settings.
func logConfiguration(cfg *Config) {
	log.Println("--- Configuration ---")
	log.Printf("Server Address: %s", cfg.ListenAddress)
	log.Printf("Server Port: %s", cfg.ListenPort)
	log.Printf("Rate Limit: %v req/s", cfg.RateLimit)
	log.Printf("Storage Driver: %s", cfg.StorageDriver)
	switch cfg.StorageDriver {
	case StorageFile:
		log.Printf("Data File: %s", cfg.DataFilePath)
		log.Printf("Save Interval: %s", cfg.SaveInterval)
		log.Printf("Backup Enabled: %t", cfg.EnableBackup)
	case StorageSQLite:
		log.Printf("SQLite Path: %s", cfg.SQLitePath)
	case StorageRedis:
		log.Printf("Redis Address: %s (prefix %q)", cfg.RedisAddr, cfg.RedisPrefix)
	}
	log.Printf("Delete Confirmation TTL: %s", cfg.DeleteConfirmTTL)
	log.Printf("Max Image Width: %d", cfg.MaxImageWidth)
	log.Println("---------------------")
}
