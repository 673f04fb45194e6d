// Package config provides configuration management for the newsradar
// application. Values come from an optional YAML file, environment
// variables, and defaults, all resolved through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newsradar/internal/database"
	"github.com/jonesrussell/newsradar/internal/domain"
	"github.com/jonesrussell/newsradar/internal/logger"
)

// App holds application-level settings.
type App struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// Crawler holds the settings shared by search and article fetching.
type Crawler struct {
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Search holds the news search settings.
type Search struct {
	Endpoint string `mapstructure:"endpoint"`
	Limit    int    `mapstructure:"limit"`
}

// Analyzer holds the article analysis settings.
type Analyzer struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Backup holds the JSON backup settings.
type Backup struct {
	Dir string `mapstructure:"dir"`
}

// Schedule holds the daily trigger settings.
type Schedule struct {
	// Spec is a standard five-field cron expression.
	Spec string `mapstructure:"spec"`
	// Timezone names the IANA location the cron spec is evaluated in.
	Timezone string `mapstructure:"timezone"`
	// ImportCommand, when set, is the external command to run after each
	// completed sweep (argv form, first element is the binary).
	ImportCommand []string `mapstructure:"import_command"`
}

// Config represents the application configuration.
type Config struct {
	App      App              `mapstructure:"app"`
	Logger   logger.Config    `mapstructure:"logger"`
	Database database.Config  `mapstructure:"database"`
	Crawler  Crawler          `mapstructure:"crawler"`
	Search   Search           `mapstructure:"search"`
	Analyzer Analyzer         `mapstructure:"analyzer"`
	Backup   Backup           `mapstructure:"backup"`
	Schedule Schedule         `mapstructure:"schedule"`
	Keywords []domain.Keyword `mapstructure:"keywords"`
}

// SetDefaults registers default values on the given viper instance.
// Environment variables and the config file override them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "newsradar",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	v.SetDefault("database", map[string]any{
		"host":    "localhost",
		"port":    "5432",
		"sslmode": "disable",
	})

	v.SetDefault("crawler", map[string]any{
		"request_timeout": "30s",
	})

	v.SetDefault("search", map[string]any{
		"limit": 10,
	})

	v.SetDefault("analyzer", map[string]any{
		"model": "gpt-4o-mini",
	})

	v.SetDefault("backup", map[string]any{
		"dir": "saved_news",
	})

	v.SetDefault("schedule", map[string]any{
		"spec":     "7 0 * * *",
		"timezone": "Asia/Seoul",
	})
}

// Load decodes the resolved viper state into a typed Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ValidateStorage checks the settings every database-backed command needs.
func (c *Config) ValidateStorage() error {
	if c.Database.User == "" {
		return errors.New("database user must be specified")
	}
	if c.Database.DBName == "" {
		return errors.New("database name must be specified")
	}
	return nil
}

// ValidateAnalyzer checks the settings every analyzing command needs.
func (c *Config) ValidateAnalyzer() error {
	if c.Analyzer.APIKey == "" {
		return errors.New("analyzer api key must be specified")
	}
	return nil
}

// ValidateCrawl checks the settings a full sweep needs.
func (c *Config) ValidateCrawl() error {
	if len(c.Keywords) == 0 {
		return errors.New("at least one keyword must be configured")
	}
	if err := c.ValidateAnalyzer(); err != nil {
		return err
	}
	return c.ValidateStorage()
}
