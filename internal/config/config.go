// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

// Package config loads hrx CLI settings from defaults, an optional config
// file, HRX_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/woozymasta/pathrules"
)

const (
	// AppName is used for config directory and env prefix.
	AppName = "hrx"
	// ConfigFileName is config file base name without extension.
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides, e.g. HRX_LOG_LEVEL.
	EnvPrefix = "HRX"
)

// Output formats for listing commands.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrInvalidConfig is returned for values that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved CLI configuration.
type Config struct {
	// LogLevel is charmbracelet/log level name.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	// Output is listing format: text, json or yaml.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
	// Pack holds defaults for the pack command.
	Pack PackConfig `json:"pack" yaml:"pack" mapstructure:"pack"`
	// AllowUnregistered lets pack/delete run without progress output.
	AllowUnregistered bool `json:"allow_unregistered" yaml:"allow_unregistered" mapstructure:"allow_unregistered"`
}

// PackConfig holds pack command defaults.
type PackConfig struct {
	// Include patterns; when set, only matching items are packed.
	Include []string `json:"include,omitempty" yaml:"include,omitempty" mapstructure:"include"`
	// Exclude patterns, evaluated after Include.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`
	// CaseInsensitive switches pattern matching to case-insensitive mode.
	CaseInsensitive bool `json:"case_insensitive" yaml:"case_insensitive" mapstructure:"case_insensitive"`
}

// LoadOptions configures Load.
type LoadOptions struct {
	// ConfigFile is explicit config path; it must exist when set.
	ConfigFile string
	// ConfigDir overrides the user config directory lookup.
	ConfigDir string
}

// DefaultConfig returns built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Output:   OutputText,
	}
}

// New returns viper instance with defaults, env binding and config file
// applied. Callers may bind flags before calling Decode.
func New(opts LoadOptions) (*viper.Viper, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("allow_unregistered", defaults.AllowUnregistered)
	v.SetDefault("pack.include", defaults.Pack.Include)
	v.SetDefault("pack.exclude", defaults.Pack.Exclude)
	v.SetDefault("pack.case_insensitive", defaults.Pack.CaseInsensitive)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}

		return v, opts.ConfigFile, nil
	}

	v.SetConfigName(ConfigFileName)
	if dir, err := configDirWithOverride(opts.ConfigDir); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, "", nil
		}

		return nil, "", fmt.Errorf("read config: %w", err)
	}

	return v, v.ConfigFileUsed(), nil
}

// Decode unmarshals and validates configuration from v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load is New followed by Decode.
func Load(opts LoadOptions) (*Config, string, error) {
	v, path, err := New(opts)
	if err != nil {
		return nil, "", err
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q", ErrInvalidConfig, c.Output)
	}

	return nil
}

// Level returns parsed log level; invalid names fall back to warn.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}

	return level
}

// Rules converts pack include/exclude lists to ordered filter rules.
// Includes come first so a later exclude can carve items out of them.
func (p PackConfig) Rules() []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(p.Include)+len(p.Exclude))
	for _, pattern := range p.Include {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: pattern})
	}
	for _, pattern := range p.Exclude {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: pattern})
	}

	return rules
}

// MatcherOptions returns filter matcher options. With include patterns the
// default is exclude; otherwise everything not excluded is packed.
func (p PackConfig) MatcherOptions() pathrules.MatcherOptions {
	action := pathrules.ActionInclude
	if len(p.Include) > 0 {
		action = pathrules.ActionExclude
	}

	return pathrules.MatcherOptions{
		CaseInsensitive: p.CaseInsensitive,
		DefaultAction:   action,
	}
}

// ConfigDir returns user config directory for hrx.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}

	return filepath.Join(dir, AppName), nil
}

// configDirWithOverride returns override when set.
func configDirWithOverride(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	return ConfigDir()
}
