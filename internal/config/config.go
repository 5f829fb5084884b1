// Package config provides configuration types and defaults for extractreg.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bigdbm/extractreg/internal/tracing"
)

// Store backends.
const (
	StoreParquet = "parquet"
	StoreSQLite  = "sqlite"
)

// Layout catalog backends.
const (
	LayoutsFilesystem = "filesystem"
	LayoutsSQLite     = "sqlite"
	LayoutsPostgres   = "postgres"
	LayoutsMySQL      = "mysql"
	LayoutsMongoDB    = "mongodb"
)

// Config holds all configuration options for extractreg.
type Config struct {
	ProductBase string         `mapstructure:"product_base" yaml:"product_base"`
	Store       StoreConfig    `mapstructure:"store" yaml:"store"`
	Layouts     LayoutsConfig  `mapstructure:"layouts" yaml:"layouts"`
	Tracing     tracing.Config `mapstructure:"tracing" yaml:"tracing"`
	Log         LogConfig      `mapstructure:"log" yaml:"log"`
}

// StoreConfig selects where extract type records live.
type StoreConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"` // "parquet" (default) or "sqlite"
	Root       string `mapstructure:"root" yaml:"root"`       // product storage root
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// LayoutsConfig selects the catalog consulted for layout_id references.
type LayoutsConfig struct {
	Backend  string         `mapstructure:"backend" yaml:"backend"`
	Root     string         `mapstructure:"root" yaml:"root"` // filesystem backend only
	SQL      SQLConfig      `mapstructure:"sql" yaml:"sql"`
	Mongo    MongoConfig    `mapstructure:"mongo" yaml:"mongo"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"` // 0 disables caching
}

// SQLConfig locates a postgres or mysql layout table.
type SQLConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
	Table    string `mapstructure:"table" yaml:"table"`
	Column   string `mapstructure:"column" yaml:"column"`
}

// MongoConfig locates a layout collection.
type MongoConfig struct {
	URI        string `mapstructure:"uri" yaml:"uri"`
	Database   string `mapstructure:"database" yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
	Field      string `mapstructure:"field" yaml:"field"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
	Debug bool   `mapstructure:"debug" yaml:"debug"` // write the log file at all
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	base := DefaultBaseDir()
	tracingCfg := tracing.DefaultConfig()
	tracingCfg.FilePath = DefaultTracesFilePath()

	return Config{
		ProductBase: "extract-types",
		Store: StoreConfig{
			Backend:    StoreParquet,
			Root:       filepath.Join(base, "data"),
			SQLitePath: filepath.Join(base, "extractreg.db"),
		},
		Layouts: LayoutsConfig{
			Backend: LayoutsFilesystem,
			Root:    filepath.Join(base, "layouts", "extracts"),
			SQL: SQLConfig{
				Host:    "localhost",
				SSLMode: "disable",
				Table:   "layouts",
				Column:  "layout_id",
			},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "extractreg",
				Collection: "layouts",
				Field:      "layout_id",
			},
			CacheTTL: 5 * time.Minute,
		},
		Tracing: tracingCfg,
		Log: LogConfig{
			Path:  filepath.Join(base, "debug.log"),
			Level: "info",
		},
	}
}

// DefaultBaseDir returns ~/.extractreg, or .extractreg when the home directory is unavailable.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".extractreg"
	}
	return filepath.Join(home, ".extractreg")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/extractreg/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "extractreg", "traces", "traces.jsonl")
}

// Validate checks the whole configuration and returns the first problem found.
func Validate(cfg Config) error {
	if cfg.ProductBase == "" {
		return fmt.Errorf("product_base is required")
	}
	if err := ValidateStore(cfg.Store); err != nil {
		return err
	}
	if err := ValidateLayouts(cfg.Layouts); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateStore checks store configuration for errors.
func ValidateStore(store StoreConfig) error {
	switch store.Backend {
	case StoreParquet, "":
		if store.Root == "" {
			return fmt.Errorf("store.root is required for the parquet backend")
		}
	case StoreSQLite:
		if store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreParquet, StoreSQLite, store.Backend)
	}
	return nil
}

// ValidateLayouts checks layout catalog configuration for errors.
func ValidateLayouts(layouts LayoutsConfig) error {
	if layouts.CacheTTL < 0 {
		return fmt.Errorf("layouts.cache_ttl must not be negative, got %s", layouts.CacheTTL)
	}
	switch layouts.Backend {
	case LayoutsFilesystem, "":
		if layouts.Root == "" {
			return fmt.Errorf("layouts.root is required for the filesystem backend")
		}
	case LayoutsSQLite:
		// Shares store.sqlite_path.
	case LayoutsPostgres, LayoutsMySQL:
		if layouts.SQL.Database == "" {
			return fmt.Errorf("layouts.sql.database is required for the %s backend", layouts.Backend)
		}
		if layouts.SQL.Table == "" || layouts.SQL.Column == "" {
			return fmt.Errorf("layouts.sql.table and layouts.sql.column are required")
		}
	case LayoutsMongoDB:
		if layouts.Mongo.URI == "" || layouts.Mongo.Database == "" {
			return fmt.Errorf("layouts.mongo.uri and layouts.mongo.database are required for the mongodb backend")
		}
	default:
		return fmt.Errorf("layouts.backend must be one of filesystem, sqlite, postgres, mysql, mongodb, got %q", layouts.Backend)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(cfg tracing.Config) error {
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}

	if cfg.Exporter != "" {
		switch cfg.Exporter {
		case tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if cfg.Enabled {
		if cfg.Exporter == tracing.ExporterFile && cfg.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if cfg.Exporter == tracing.ExporterOTLP && cfg.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}
