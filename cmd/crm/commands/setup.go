package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/wonny/insight/pkg/config"
	"github.com/wonny/insight/pkg/logger"
)

// setup loads configuration and builds the logger, honoring the
// global --config and --verbose flags.
func setup() (*config.Config, *logger.Logger, error) {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return nil, nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
