package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	appName  = "create-looker-extension"
	fileName = "config"
	fileType = "yaml"

	// EnvPrefix prefixes every environment override, e.g. CLE_PACKAGE_MANAGER.
	EnvPrefix = "CLE"
)

// Dir returns the directory searched for config.yaml, normally
// $XDG_CONFIG_HOME/create-looker-extension.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", "."+appName)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName)
}

// FilePath returns the default config file location.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// LoadOptions control where configuration is read from.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string
	// SearchDir overrides Dir for the optional config.yaml lookup.
	SearchDir string
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Loader reads configuration into its own viper instance. Flags can be
// bound to the same instance with Viper before calling Load.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults and CLE_* environment
// overrides registered.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Viper exposes the underlying instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads the config file (when present), decodes the layered values
// and validates them. A missing default config file is not an error; a
// missing explicit file is.
func (l *Loader) Load(opts LoadOptions) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.File != "" {
		l.v.SetConfigFile(opts.File)
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = Dir()
		}
		l.v.SetConfigName(fileName)
		l.v.SetConfigType(fileType)
		l.v.AddConfigPath(dir)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
		logger.Debug("no config file, using defaults and environment")
	} else {
		logger.Debug("config file loaded", "path", l.v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is a convenience wrapper around NewLoader().Load.
func Load(opts LoadOptions) (*Config, error) {
	return NewLoader().Load(opts)
}
