package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Parse     ParseConfig     `yaml:"parse" mapstructure:"parse"`
	Directory DirectoryConfig `yaml:"directory" mapstructure:"directory"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects how schedule documents are turned into pages.
type SourceConfig struct {
	Provider      string  `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string  `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MergeGap      float64 `yaml:"merge_gap" mapstructure:"merge_gap"`
}

// ParseConfig configures structure recovery.
type ParseConfig struct {
	Year         int    `yaml:"year" mapstructure:"year"`
	MinTableRows int    `yaml:"min_table_rows" mapstructure:"min_table_rows"`
	PhaseTable   string `yaml:"phase_table" mapstructure:"phase_table"`
	PhaseFile    string `yaml:"phase_file" mapstructure:"phase_file"`
}

// DirectoryConfig points at the optional customer directory workbook.
type DirectoryConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Sheet string `yaml:"sheet" mapstructure:"sheet"`
}

// StoreConfig configures the run database.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCHEDULE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("source.provider", "auto")
	v.SetDefault("source.pdftotext_path", "pdftotext")
	v.SetDefault("source.merge_gap", 3.0)
	v.SetDefault("parse.year", 0)
	v.SetDefault("parse.min_table_rows", 7)
	v.SetDefault("parse.phase_table", "detailed")
	v.SetDefault("parse.phase_file", "")
	v.SetDefault("directory.path", "")
	v.SetDefault("directory.sheet", "Customers")
	v.SetDefault("store.database_url", "schedule.db")
	v.SetDefault("server.port", 8080)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by the given command mode.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "parse":
		switch c.Source.Provider {
		case "auto", "pdftotext", "xlsx", "json":
		default:
			errs = append(errs, fmt.Sprintf("source.provider %q is not one of auto, pdftotext, xlsx, json", c.Source.Provider))
		}
		if c.Source.MergeGap < 0 {
			errs = append(errs, "source.merge_gap must be >= 0")
		}
		if c.Parse.MinTableRows < 1 {
			errs = append(errs, "parse.min_table_rows must be >= 1")
		}
		if c.Parse.Year < 0 {
			errs = append(errs, "parse.year must be >= 0")
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
