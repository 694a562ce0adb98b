package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/cells/internal/errors"
	"github.com/vango-dev/cells/pkg/reactive"
)

const (
	// DefaultListen is the default live server address.
	DefaultListen = "localhost:8080"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultLogLevel is the default slog level.
	DefaultLogLevel = "info"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "cells"
)

// Environment variables read by ApplyEnv.
const (
	EnvDebug    = "CELLS_DEBUG"
	EnvListen   = "CELLS_LISTEN"
	EnvLogLevel = "CELLS_LOG_LEVEL"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"cells.yaml", "cells.yml", "cells.json"}

// Config is the complete cells configuration.
type Config struct {
	// Debug turns framework-bug reports into panics.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	// PerformanceLints logs signals with too many dependents.
	PerformanceLints bool `json:"performanceLints,omitempty" yaml:"performanceLints,omitempty"`

	// DependentLintThreshold is the dependent count that triggers the lint.
	DependentLintThreshold int `json:"dependentLintThreshold,omitempty" yaml:"dependentLintThreshold,omitempty"`

	// LogTicks logs propagation statistics after every tick.
	LogTicks bool `json:"logTicks,omitempty" yaml:"logTicks,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Listen is the live server address.
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"`

	// MetricsPath is where the live server exposes Prometheus metrics.
	// Empty disables the endpoint.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`

	// TracerName is the OpenTelemetry tracer name.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		DependentLintThreshold: reactive.DefaultDependentLintThreshold,
		LogLevel:               DefaultLogLevel,
		Listen:                 DefaultListen,
		MetricsPath:            DefaultMetricsPath,
		TracerName:             DefaultTracerName,
	}
}

// Load reads the first config file found in dir and applies environment
// overrides. Without a config file it returns the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, cfg.Validate()
		}
	}
	cfg := New()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R100").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, errors.New("R101").WithDetail("Cannot load " + path)
	}
	if err != nil {
		return nil, errors.New("R100").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	default:
		return errors.New("R101").WithDetail("Cannot save " + path)
	}
	if err != nil {
		return errors.New("R100").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R100").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.DependentLintThreshold == 0 {
		c.DependentLintThreshold = reactive.DefaultDependentLintThreshold
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.TracerName == "" {
		c.TracerName = DefaultTracerName
	}
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		c.Listen = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DependentLintThreshold < 0 {
		return errors.New("R100").
			WithDetail("dependentLintThreshold must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.New("R100").
			WithDetail("Unknown logLevel " + strconv.Quote(c.LogLevel)).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if c.Listen == "" {
		return errors.New("R100").WithDetail("listen must not be empty")
	}
	if c.MetricsPath != "" && !strings.HasPrefix(c.MetricsPath, "/") {
		return errors.New("R100").
			WithDetail("metricsPath must start with /")
	}
	return nil
}

// SlogLevel returns the configured log level, or info if it is invalid.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// Apply pushes the debug settings into the reactive package.
func (c *Config) Apply() {
	reactive.DebugMode = c.Debug
	reactive.Debug = reactive.DebugConfig{
		PerformanceLints:       c.PerformanceLints,
		DependentLintThreshold: c.DependentLintThreshold,
		LogTicks:               c.LogTicks,
	}
}
