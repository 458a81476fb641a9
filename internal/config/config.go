// Package config provides runtime configuration values for the shop.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Policies for a catalog document that fails to load.
const (
	MalformedFail       = "fail"
	MalformedRegenerate = "regenerate"
)

// Config holds configuration knobs for persistence, logging and the HTTP server.
type Config struct {
	CatalogPath     string
	CartPath        string
	StoreBackend    string
	SQLitePath      string
	CatalogSync     bool
	OnMalformed     string
	LogLevel        string
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("catalog_path", "products.json")
	v.SetDefault("cart_path", "cart.json")
	v.SetDefault("store_backend", BackendJSON)
	v.SetDefault("sqlite_path", "shop.db")
	v.SetDefault("catalog_sync", false)
	v.SetDefault("on_malformed", MalformedFail)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("shutdown_timeout", 15)
	v.AutomaticEnv()
	return v
}

// intOr reads key as an integer, falling back to def when unset or unparsable.
func intOr(v *viper.Viper, key string, def int) int {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// oneOf reads key and fails unless it names one of allowed.
func oneOf(v *viper.Viper, key string, allowed ...string) (string, error) {
	val := strings.ToLower(strings.TrimSpace(v.GetString(key)))
	for _, a := range allowed {
		if val == a {
			return val, nil
		}
	}
	return "", fmt.Errorf("%s: %q is not one of %s", strings.ToUpper(key), val, strings.Join(allowed, ", "))
}

// Load collects configuration from the environment with defaults. Unknown
// STORE_BACKEND or ON_MALFORMED values are an error. When
// CONFIG_FILE is set, values from that file sit between the defaults and the
// environment.
func Load() (Config, error) {
	v := newViper()
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	backend, err := oneOf(v, "store_backend", BackendJSON, BackendSQLite)
	if err != nil {
		return Config{}, err
	}
	onMalformed, err := oneOf(v, "on_malformed", MalformedFail, MalformedRegenerate)
	if err != nil {
		return Config{}, err
	}
	return Config{
		CatalogPath:     v.GetString("catalog_path"),
		CartPath:        v.GetString("cart_path"),
		StoreBackend:    backend,
		SQLitePath:      v.GetString("sqlite_path"),
		CatalogSync:     v.GetBool("catalog_sync"),
		OnMalformed:     onMalformed,
		LogLevel:        v.GetString("log_level"),
		HTTPAddr:        v.GetString("http_addr"),
		ShutdownTimeout: time.Duration(intOr(v, "shutdown_timeout", 15)) * time.Second,
	}, nil
}
