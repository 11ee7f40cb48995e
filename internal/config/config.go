// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	SaveModeAsync = "async"
	SaveModeSync  = "sync"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Table    string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type Config struct {
	Port          string
	StorageDriver string
	StorageKey    string
	DataPath      string

	Database DatabaseConfig
	Redis    RedisConfig

	CacheEnabled bool
	CacheTTL     time.Duration

	SeedDays      int
	RetentionDays int

	SaveMode    string
	SaveTimeout time.Duration
	SaveRetries int

	JWTSecret           string
	OwnerPassphrase     string
	OwnerPassphraseHash string
	TokenTTL            time.Duration
	RateLimit           int
	RateLimitWindow     time.Duration
}

// Load reads .env files when present, then the environment. Files never
// override variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			log.Printf("[CONFIG] Loaded %s", f)
		}
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	driver := strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile))
	defaultPath := "./data/kanso.json"
	if driver == DriverSQLite {
		defaultPath = "./data/kanso.db"
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: driver,
		StorageKey:    getEnv("STORAGE_KEY", "kanso-habits"),
		DataPath:      getEnv("DATA_PATH", defaultPath),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			Table:    getEnv("DB_TABLE", "kanso_blobs"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		SaveMode:            strings.ToLower(getEnv("SAVE_MODE", SaveModeAsync)),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		OwnerPassphrase:     getEnv("OWNER_PASSPHRASE", ""),
		OwnerPassphraseHash: getEnv("OWNER_PASSPHRASE_HASH", ""),
		RateLimitWindow:     time.Minute,
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheEnabled, err = getBool("CACHE_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SeedDays, err = getInt("SEED_DAYS", 90); err != nil {
		return nil, err
	}
	if cfg.RetentionDays, err = getInt("RETENTION_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.SaveTimeout, err = getDuration("SAVE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SaveRetries, err = getInt("SAVE_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.SaveMode {
	case SaveModeAsync, SaveModeSync:
	default:
		return fmt.Errorf("config: unknown SAVE_MODE %q", c.SaveMode)
	}
	if c.SeedDays < 0 {
		return fmt.Errorf("config: SEED_DAYS cannot be negative")
	}
	if c.RetentionDays < 1 {
		return fmt.Errorf("config: RETENTION_DAYS must be at least 1")
	}
	if c.SaveRetries < 0 {
		return fmt.Errorf("config: SAVE_RETRIES cannot be negative")
	}
	if c.AuthEnabled() && c.OwnerPassphrase == "" && c.OwnerPassphraseHash == "" {
		return fmt.Errorf("config: JWT_SECRET requires OWNER_PASSPHRASE or OWNER_PASSPHRASE_HASH")
	}
	return nil
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.StorageDriver == DriverRedis || c.CacheEnabled || c.RateLimit > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
