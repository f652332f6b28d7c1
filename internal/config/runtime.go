// Package config provides centralized configuration for mtplates runtime values.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

const (
	// AppName is the application name used for data directories.
	AppName = "mtplates"

	// EntriesFileName is the name of the user-added dataset file.
	EntriesFileName = "NewCities.txt"
)

// Entry log backends.
const (
	BackendText   = "text"
	BackendBadger = "badger"
)

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Data file configuration
	Data DataConfig

	// Storage configuration
	Storage StorageConfig
}

// DataConfig locates the seed and user-added datasets.
type DataConfig struct {
	// SeedFile is a CSV file (city,county,prefix) to load instead of the
	// built-in dataset. Empty means built-in.
	SeedFile string

	// EntriesFile is the user-added dataset for the text backend.
	// Default: $XDG_DATA_HOME/mtplates/NewCities.txt
	EntriesFile string

	// Backend selects how user-added entries are stored: "text" or "badger".
	// Default: text
	Backend string

	// BadgerDir is the database directory for the badger backend.
	// Default: $XDG_DATA_HOME/mtplates/db
	BadgerDir string
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// MinFreeSpace is the minimum free space required before appending an entry.
	// Default: 1MB
	MinFreeSpace uint64
}

// DefaultEntriesPath returns the default user-added dataset path under the XDG data home.
func DefaultEntriesPath() string {
	return filepath.Join(xdg.DataHome, AppName, EntriesFileName)
}

// DefaultBadgerPath returns the default badger directory under the XDG data home.
func DefaultBadgerPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Data: DataConfig{
			EntriesFile: DefaultEntriesPath(),
			Backend:     BackendText,
			BadgerDir:   DefaultBadgerPath(),
		},
		Storage: StorageConfig{
			MinFreeSpace: 1024 * 1024, // 1MB
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	if v := os.Getenv("MTPLATES_SEED_FILE"); v != "" {
		c.Data.SeedFile = v
	}
	if v := os.Getenv("MTPLATES_ENTRIES_FILE"); v != "" {
		c.Data.EntriesFile = v
	}
	if v := os.Getenv("MTPLATES_BACKEND"); v != "" {
		c.Data.Backend = v
	}
	if v := os.Getenv("MTPLATES_BADGER_DIR"); v != "" {
		c.Data.BadgerDir = v
	}

	if v := os.Getenv("MTPLATES_MIN_FREE_SPACE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpace = n
		}
	}
}
