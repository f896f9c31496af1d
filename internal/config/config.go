package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	APIURL       string
	APIKey       string
	Currency     string
	Page         int
	PerPage      int
	Days         int
	Store        string
	StorePath    string
	PGDSN        string
	HTTPTimeout  time.Duration
	DetailMaxAge time.Duration
	StaleGuard   bool
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COINSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", "https://api.coingecko.com/api/v3")
	v.SetDefault("currency", "usd")
	v.SetDefault("page", 1)
	v.SetDefault("per-page", 100)
	v.SetDefault("days", 7)
	v.SetDefault("store", StoreFile)
	v.SetDefault("store-path", "./data/coinscope.json")
	v.SetDefault("http-timeout", time.Duration(0))
	v.SetDefault("detail-max-age", time.Duration(0))
	v.SetDefault("stale-guard", true)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		APIURL:       v.GetString("api-url"),
		APIKey:       v.GetString("api-key"),
		Currency:     strings.ToLower(v.GetString("currency")),
		Page:         v.GetInt("page"),
		PerPage:      v.GetInt("per-page"),
		Days:         v.GetInt("days"),
		Store:        strings.ToLower(v.GetString("store")),
		StorePath:    v.GetString("store-path"),
		PGDSN:        v.GetString("pg-dsn"),
		HTTPTimeout:  v.GetDuration("http-timeout"),
		DetailMaxAge: v.GetDuration("detail-max-age"),
		StaleGuard:   v.GetBool("stale-guard"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

// Validate checks value ranges and backend requirements.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if c.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if c.PerPage < 1 || c.PerPage > 250 {
		return fmt.Errorf("per-page must be between 1 and 250")
	}
	if c.Days < 1 {
		return fmt.Errorf("days must be >= 1")
	}
	switch c.Store {
	case StoreMemory:
	case StoreFile, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("store-path is required for %s store", c.Store)
		}
	case StorePostgres:
		if c.PGDSN == "" {
			return fmt.Errorf("pg dsn is required for postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}
