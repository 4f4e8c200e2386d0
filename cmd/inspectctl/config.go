package main

import (
	"fmt"
	"time"

	"github.com/kbukum/inspectkit/config"
	"github.com/kbukum/inspectkit/httpclient"
	"github.com/kbukum/inspectkit/observability"
	"github.com/kbukum/inspectkit/validation"
)

const (
	serviceName = "inspectctl"
	envPrefix   = "INSPECTCTL"
)

// cliConfig is loaded from config.yml, .env and INSPECTCTL_* variables.
type cliConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
	API                  httpclient.Config         `mapstructure:"api"`
	Metrics              observability.MeterConfig `mapstructure:"metrics"`
}

func (c *cliConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	// stdout carries command output.
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	c.ServiceConfig.ApplyDefaults()

	if c.API.Timeout <= 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Name
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
}

func (c *cliConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.API.Validate()
}

func loadConfig(configFile, envFile string) (*cliConfig, error) {
	cfg := &cliConfig{}
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
