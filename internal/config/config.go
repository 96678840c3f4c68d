// Package config loads udisks settings from file, environment and defaults
// using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/internal/metrics"
	"github.com/deploymenttheory/go-udisks/internal/source/dbussource"
)

// Configuration file base name and environment variable prefix.
const (
	ConfigName = "udisks-config"
	EnvPrefix  = "UDISKS"
)

var searchPaths = []string{".", "$HOME/.udisks", "/etc/udisks"}

// Config holds all settings.
type Config struct {
	Source dbussource.Config `mapstructure:",squash" yaml:",inline"`

	// Snapshot, when set, reads the graph from a YAML snapshot file instead
	// of the bus.
	Snapshot string `mapstructure:"snapshot" yaml:"snapshot,omitempty"`

	Log     logger.Config  `mapstructure:"log" yaml:"log"`
	Metrics metrics.Config `mapstructure:"metrics" yaml:"metrics"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Source:  dbussource.DefaultConfig(),
		Log:     logger.Config{Level: "warn", Output: "stderr"},
		Metrics: metrics.DefaultConfig(),
	}
}

// Load reads configuration. When file is empty the search paths are tried
// and a missing file is not an error; an explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Source.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("bus", def.Source.Bus)
	v.SetDefault("destination", def.Source.Destination)
	v.SetDefault("path", def.Source.Path)
	v.SetDefault("timeout", def.Source.Timeout)
	v.SetDefault("snapshot", "")

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.output", def.Log.Output)
	v.SetDefault("log.console", false)

	v.SetDefault("metrics.namespace", def.Metrics.Namespace)
	v.SetDefault("metrics.subsystem", def.Metrics.Subsystem)
}
