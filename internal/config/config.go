// Package config loads greenpulse settings from ~/.greenpulse/config.yaml,
// an optional project overlay and GREENPULSE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine/batch"
	"github.com/qaim-b/the-green-pulse/internal/engine/cache"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1.0.0"

// SupportedVersions is the semver constraint a config file must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// Output format names.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Environment overrides.
const (
	EnvHome      = "GREENPULSE_HOME"
	EnvLogLevel  = "GREENPULSE_LOG_LEVEL"
	EnvLogFormat = "GREENPULSE_LOG_FORMAT"
	EnvOutput    = "GREENPULSE_OUTPUT"
	EnvModel     = "GREENPULSE_MODEL"
)

// configFileName is the config file inside the config directory.
const configFileName = "config.yaml"

// Validation errors. They can be compared with errors.Is().
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
	ErrUnknownKey         = errors.New("unknown configuration key")
)

// Config is the full greenpulse configuration.
type Config struct {
	Version       string              `yaml:"version"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Model         ModelConfig         `yaml:"model"`
	Cache         CacheConfig         `yaml:"cache"`
	Portfolio     PortfolioConfig     `yaml:"portfolio"`
	Certification CertificationConfig `yaml:"certification"`

	configPath string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ModelConfig selects the prediction model artifact. An empty Path uses the
// built-in reference model.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig controls the prediction cache.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory"`
	TTL       string `yaml:"ttl"`
}

// PortfolioConfig controls batch assessment.
type PortfolioConfig struct {
	BatchSize   int `yaml:"batch_size"`
	Concurrency int `yaml:"concurrency"`
}

// CertificationConfig overrides the credit ladder. Empty Tiers keeps the
// LEED v4.1 default.
type CertificationConfig struct {
	Tiers []certification.Tier `yaml:"tiers,omitempty"`
}

// Default returns a configuration with built-in defaults and no file path.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     cache.DefaultTTL.String(),
		},
		Portfolio: PortfolioConfig{
			BatchSize:   batch.DefaultBatchSize,
			Concurrency: batch.DefaultConcurrency,
		},
	}
}

// New returns the defaults overlaid with ~/.greenpulse/config.yaml (when it
// exists) and the environment. A malformed file is ignored; Validate
// reports it.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Cache.Directory = filepath.Join(dir, "cache")
		if _, statErr := os.Stat(cfg.configPath); statErr == nil {
			_ = cfg.Load()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Load reads the config file over the current values.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration to its config path.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("%w: no config path set", ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ConfigPath returns the file this configuration loads from and saves to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file this configuration loads from and saves to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// applyEnvOverrides applies GREENPULSE_* variables on top of file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv(cache.EnvTTL); v != "" {
		c.Cache.TTL = v
	}
	c.Cache.Enabled = cache.EnabledFromEnv(c.Cache.Enabled)
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if err := checkVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if !IsValidFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: output.default_format %q (want table, json or ndjson)",
			ErrInvalidConfig, c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 6 {
		errs = append(errs, fmt.Errorf("%w: output.precision %d outside 0-6", ErrInvalidConfig, c.Output.Precision))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("%w: logging.format %q (want console or json)", ErrInvalidConfig, c.Logging.Format))
	}
	if _, err := c.CacheTTL(); err != nil {
		errs = append(errs, fmt.Errorf("%w: cache.ttl: %w", ErrInvalidConfig, err))
	}
	if c.Portfolio.BatchSize < batch.MinBatchSize || c.Portfolio.BatchSize > batch.MaxBatchSize {
		errs = append(errs, fmt.Errorf("%w: portfolio.batch_size %d outside %d-%d",
			ErrInvalidConfig, c.Portfolio.BatchSize, batch.MinBatchSize, batch.MaxBatchSize))
	}
	if c.Portfolio.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: portfolio.concurrency must be >= 1", ErrInvalidConfig))
	}
	if _, err := c.TierTable(); err != nil {
		errs = append(errs, fmt.Errorf("%w: certification.tiers: %w", ErrInvalidConfig, err))
	}
	if c.Model.Path != "" {
		if _, err := os.Stat(c.Model.Path); err != nil {
			errs = append(errs, fmt.Errorf("%w: model.path: %w", ErrInvalidConfig, err))
		}
	}

	return errors.Join(errs...)
}

func checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// IsValidFormat reports whether format is a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatNDJSON:
		return true
	}
	return false
}

// CacheTTL parses the configured cache TTL.
func (c *Config) CacheTTL() (time.Duration, error) {
	return cache.ParseTTL(c.Cache.TTL)
}

// TierTable returns the configured credit ladder, or the LEED default.
func (c *Config) TierTable() (certification.TierTable, error) {
	if len(c.Certification.Tiers) == 0 {
		return certification.DefaultTierTable(), nil
	}
	return certification.NewTierTable(c.Certification.Tiers)
}

// Get returns the value at a dotted key such as "cache.ttl" or
// "portfolio.batch_size", formatted for display.
func (c *Config) Get(key string) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	var tree map[string]any
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return "", fmt.Errorf("decoding config: %w", err)
	}

	var node any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if node, ok = m[part]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}

	switch v := node.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	default:
		out, marshalErr := yaml.Marshal(v)
		if marshalErr != nil {
			return "", fmt.Errorf("encoding %s: %w", key, marshalErr)
		}
		return strings.TrimSpace(string(out)), nil
	}
}
