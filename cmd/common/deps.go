// Package common provides shared construction helpers for command
// implementations.
package common

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newsradar/internal/config"
	"github.com/jonesrussell/newsradar/internal/logger"
)

// ErrLoggerRequired is reported when command deps lack a logger.
var ErrLoggerRequired = errors.New("logger is required")

// ErrConfigRequired is reported when command deps lack a config.
var ErrConfigRequired = errors.New("config is required")

// CommandDeps holds the dependencies every command starts from.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads the typed config from the resolved viper state and
// creates the logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
