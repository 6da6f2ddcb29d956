package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cuemby/clusterview/pkg/poller"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "CLUSTERVIEW"

// Config holds the settings shared by every command. Values come from flags,
// CLUSTERVIEW_* environment variables and an optional config file, in that
// order of precedence.
type Config struct {
	APIURL     string        `mapstructure:"api-url"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Listen     string        `mapstructure:"listen"`
	DataDir    string        `mapstructure:"data-dir"`
	IntervalMs int           `mapstructure:"interval-ms"`
	LogLevel   string        `mapstructure:"log-level"`
	LogJSON    bool          `mapstructure:"log-json"`
	Views      []string      `mapstructure:"views"`
}

// Poller returns the polling options
func (c *Config) Poller() poller.Config {
	return poller.Config{IntervalMs: c.IntervalMs}
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./clusterview.yaml if present)")
	flags.String("api-url", "http://localhost:8080/api/v1", "Orchestrator API base URL")
	flags.String("token", "", "Bearer token for the orchestrator API")
	flags.Duration("timeout", 10*time.Second, "Timeout of each API request")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Log as JSON instead of console output")
}

// loadConfig merges flags, environment and config file into a Config
func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", "127.0.0.1:9090")
	v.SetDefault("data-dir", "./clusterview-data")
	v.SetDefault("interval-ms", poller.DefaultIntervalMs)
	v.SetDefault("views", []string{"pods", "nodes"})

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("clusterview")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api-url is required")
	}
	return cfg, nil
}
