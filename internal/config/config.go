// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sj-alumni/directory-cli/internal/infer"
	"github.com/sj-alumni/directory-cli/internal/match"
	"github.com/sj-alumni/directory-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Import ImportConfig `yaml:"import" mapstructure:"import"`
	Match  match.Config `yaml:"match" mapstructure:"match"`
	Infer  infer.Config `yaml:"infer" mapstructure:"infer"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string           `yaml:"driver" mapstructure:"driver"`
	Path        string           `yaml:"path" mapstructure:"path"`
	DatabaseURL string           `yaml:"database_url" mapstructure:"database_url"`
	Pool        store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// ImportConfig configures ingestion runs.
type ImportConfig struct {
	CreatedBy string `yaml:"created_by" mapstructure:"created_by"`
}

// ServerConfig configures the HTTP API server.
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
	v.SetEnvPrefix("DIRECTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "directory.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("import.created_by", "import")
	v.SetDefault("match.name_similarity_threshold", 0.8)
	v.SetDefault("match.candidate_limit", 50)
	v.SetDefault("infer.enabled", true)
	v.SetDefault("infer.keyword_boost", 1.5)
	v.SetDefault("infer.accept_threshold", 0.5)
	v.SetDefault("infer.specialization_confidence", 0.7)
	v.SetDefault("infer.work_location_confidence", 0.8)
	v.SetDefault("infer.weights.job_title", 1.0)
	v.SetDefault("infer.weights.company_name", 0.8)
	v.SetDefault("infer.weights.email_domain", 0.6)
	v.SetDefault("infer.weights.office_address", 0.4)

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

// Validate checks the configuration for the given run mode ("cli" or
// "serve") and reports every problem at once.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}

	if c.Match.NameSimilarityThreshold < 0 || c.Match.NameSimilarityThreshold > 1 {
		problems = append(problems, "match.name_similarity_threshold must be between 0 and 1")
	}
	if c.Match.CandidateLimit < 1 || c.Match.CandidateLimit > 500 {
		problems = append(problems, "match.candidate_limit must be between 1 and 500")
	}
	if c.Infer.AcceptThreshold < 0 || c.Infer.AcceptThreshold > 1 {
		problems = append(problems, "infer.accept_threshold must be between 0 and 1")
	}

	switch mode {
	case "cli":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
