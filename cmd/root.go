package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bigdbm/extractreg/internal/config"
	"github.com/bigdbm/extractreg/internal/extracttype/application"
	"github.com/bigdbm/extractreg/internal/log"
	"github.com/bigdbm/extractreg/internal/manifest"
	"github.com/bigdbm/extractreg/internal/presentation"
)

// Exit codes returned by the CLI.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitDuplicate  = 3
	ExitStore      = 4
)

const envPrefix = "EXTRACTREG"

var (
	version      = "dev"
	cfgFile      string
	cfg          config.Config
	cfgErr       error
	verbose      bool
	outputFormat string
	logCleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "extractreg",
	Short: "Registry of extract type definitions",
	Long: `extractreg registers and looks up extract types: named combinations of
file-format options (delimiter, quoting, split policy, archive and extension)
bound to a layout.

Records are stored as a directory of parquet files (or in SQLite) under
<store.root>/<product_base>/<uid>.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/extractreg/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"echo log lines to stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", presentation.FormatJSON,
		"output format: json or table")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("product_base", defaults.ProductBase)
	viper.SetDefault("store.backend", defaults.Store.Backend)
	viper.SetDefault("store.root", defaults.Store.Root)
	viper.SetDefault("store.sqlite_path", defaults.Store.SQLitePath)
	viper.SetDefault("layouts.backend", defaults.Layouts.Backend)
	viper.SetDefault("layouts.root", defaults.Layouts.Root)
	viper.SetDefault("layouts.cache_ttl", defaults.Layouts.CacheTTL)
	viper.SetDefault("layouts.sql.host", defaults.Layouts.SQL.Host)
	viper.SetDefault("layouts.sql.port", defaults.Layouts.SQL.Port)
	viper.SetDefault("layouts.sql.user", defaults.Layouts.SQL.User)
	viper.SetDefault("layouts.sql.password", defaults.Layouts.SQL.Password)
	viper.SetDefault("layouts.sql.database", defaults.Layouts.SQL.Database)
	viper.SetDefault("layouts.sql.sslmode", defaults.Layouts.SQL.SSLMode)
	viper.SetDefault("layouts.sql.table", defaults.Layouts.SQL.Table)
	viper.SetDefault("layouts.sql.column", defaults.Layouts.SQL.Column)
	viper.SetDefault("layouts.mongo.uri", defaults.Layouts.Mongo.URI)
	viper.SetDefault("layouts.mongo.database", defaults.Layouts.Mongo.Database)
	viper.SetDefault("layouts.mongo.collection", defaults.Layouts.Mongo.Collection)
	viper.SetDefault("layouts.mongo.field", defaults.Layouts.Mongo.Field)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.debug", defaults.Log.Debug)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .extractreg/config.yaml (current directory)
		// 2. ~/.config/extractreg/config.yaml (user config)
		if _, err := os.Stat(".extractreg/config.yaml"); err == nil {
			viper.SetConfigFile(".extractreg/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "extractreg"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	cfgErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create default at .extractreg/config.yaml
			defaultPath := ".extractreg/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			cfgErr = fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
			return
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
}

// setup validates the loaded config and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return setupLogging(cmd.Context(), cmd.ErrOrStderr())
}

// setupLogging opens the debug log file when enabled; --verbose echoes every
// log line to stderr as well.
func setupLogging(ctx context.Context, stderr io.Writer) error {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid configuration: log.level: %w", err)
	}

	if cfg.Log.Debug {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o750); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logCleanup = cleanup
		if verbose {
			go echoLogs(ctx, stderr)
		}
	} else if verbose {
		log.InitWriter(stderr)
	} else {
		log.SetEnabled(false)
	}
	log.SetMinLevel(level)
	return nil
}

func echoLogs(ctx context.Context, w io.Writer) {
	if ctx == nil {
		ctx = context.Background()
	}
	for evt := range log.Subscribe(ctx) {
		_, _ = io.WriteString(w, evt.Payload)
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	var schemaErr *manifest.SchemaError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &schemaErr):
		return ExitValidation
	}
	switch application.ErrorKind(err) {
	case "validation":
		return ExitValidation
	case "duplicate":
		return ExitDuplicate
	case "store":
		return ExitStore
	default:
		return ExitFailure
	}
}

func newFormatter(w io.Writer) (*presentation.Formatter, error) {
	return presentation.NewFormatter(w, outputFormat)
}

// reportError writes err to stderr in the selected output format.
func reportError(w io.Writer, err error) {
	formatter, fmtErr := newFormatter(w)
	if fmtErr != nil {
		formatter, _ = presentation.NewFormatter(w, presentation.FormatJSON)
	}
	dto := presentation.FromError(err)
	if dto.Kind == "" {
		dto.Kind = "internal"
	}
	var schemaErr *manifest.SchemaError
	if errors.As(err, &schemaErr) {
		dto.Kind = "validation"
	}
	_ = formatter.FormatError(dto)
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
