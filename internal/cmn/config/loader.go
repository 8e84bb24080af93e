package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dagucloud/timescope/internal/cmn/tz"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ConfigLoader reads and merges configuration from various sources.
//
// Precedence, lowest first: defaults, config.yaml, .env in the config
// directory, TIMESCOPE_* environment variables.
type ConfigLoader struct {
	v          *viper.Viper
	configFile string
	configDir  string
	warnings   []string
}

// ConfigLoaderOption defines a functional option for configuring a ConfigLoader.
type ConfigLoaderOption func(*ConfigLoader)

// WithConfigFile returns a ConfigLoaderOption that sets the configuration file path.
func WithConfigFile(configFile string) ConfigLoaderOption {
	return func(l *ConfigLoader) {
		l.configFile = configFile
	}
}

// WithConfigDir overrides the directory searched for config.yaml and .env.
// The default is the directory of the config file if one was given, else
// $XDG_CONFIG_HOME/timescope.
func WithConfigDir(dir string) ConfigLoaderOption {
	return func(l *ConfigLoader) {
		l.configDir = dir
	}
}

// NewConfigLoader creates a ConfigLoader with the given viper instance and options.
func NewConfigLoader(v *viper.Viper, options ...ConfigLoaderOption) *ConfigLoader {
	loader := &ConfigLoader{v: v}
	for _, opt := range options {
		opt(loader)
	}
	return loader
}

// Load is a shorthand for NewConfigLoader(viper.New(), options...).Load().
func Load(options ...ConfigLoaderOption) (*Config, error) {
	return NewConfigLoader(viper.New(), options...).Load()
}

// Load reads configuration files, applies defaults and environment overrides,
// and returns a validated Config instance.
func (l *ConfigLoader) Load() (*Config, error) {
	configDir := l.configDir
	switch {
	case configDir != "":
	case l.configFile != "":
		configDir = filepath.Dir(l.configFile)
	default:
		configDir = filepath.Join(xdg.ConfigHome, AppSlug)
	}

	if err := l.loadDotEnv(configDir); err != nil {
		return nil, err
	}

	l.configureViper(configDir, l.configFile)
	l.bindEnvironmentVariables()
	l.setViperDefaultValues()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var def Definition
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&def, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg, err := l.buildConfig(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	cfg.Paths = Paths{
		ConfigDir:      configDir,
		ConfigFileUsed: l.v.ConfigFileUsed(),
	}
	cfg.Warnings = l.warnings

	return cfg, nil
}

// buildConfig transforms the Definition into a validated Config structure.
func (l *ConfigLoader) buildConfig(def Definition) (*Config, error) {
	cfg := Config{
		Core: Core{
			Debug:     def.Debug,
			LogFormat: strings.ToLower(def.LogFormat),
			TZ:        tz.Parse(strings.TrimSpace(def.TZ)),
		},
		Display: Display{
			Zones:  normalizeZones(def.Zones),
			Output: strings.ToLower(def.Output),
		},
	}

	if err := setTimezone(&cfg.Core); err != nil {
		return nil, fmt.Errorf("failed to set timezone: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads KEY=value pairs from .env in dir into the process
// environment. Variables that are already set win.
func (l *ConfigLoader) loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		l.warnings = append(l.warnings, fmt.Sprintf("Skipping %s: %v", path, err))
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (l *ConfigLoader) setViperDefaultValues() {
	l.v.SetDefault("debug", false)
	l.v.SetDefault("logFormat", "text")
	l.v.SetDefault("tz", "")
	l.v.SetDefault("zones", []string{})
	l.v.SetDefault("output", OutputTable)
}

// envBindings maps config keys to environment variable suffixes.
var envBindings = []struct {
	key string
	env string
}{
	{key: "debug", env: "DEBUG"},
	{key: "logFormat", env: "LOG_FORMAT"},
	{key: "tz", env: "TZ"},
	{key: "zones", env: "ZONES"},
	{key: "output", env: "OUTPUT"},
}

func (l *ConfigLoader) bindEnvironmentVariables() {
	prefix := strings.ToUpper(AppSlug) + "_"
	for _, b := range envBindings {
		_ = l.v.BindEnv(b.key, prefix+b.env)
	}
}

func (l *ConfigLoader) configureViper(configDir, configFile string) {
	if configFile == "" {
		l.v.AddConfigPath(configDir)
		l.v.SetConfigName("config")
	} else {
		l.v.SetConfigFile(configFile)
	}
	l.v.SetConfigType("yaml")
}

// normalizeZones trims entries and drops blanks and duplicates, keeping order.
func normalizeZones(zones []string) []string {
	trimmed := lo.Map(zones, func(z string, _ int) string {
		return strings.TrimSpace(z)
	})
	return lo.Uniq(lo.Compact(trimmed))
}
