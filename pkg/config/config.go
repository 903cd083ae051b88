package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Veraticus/dlp-regex-tester/pkg/highlight"
	"github.com/Veraticus/dlp-regex-tester/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorNever  = "never"
	ColorAuto   = "auto"
)

// Config holds all configuration for dlp-regex-tester
type Config struct {
	// Matching
	IgnoreCase   bool          `yaml:"ignore_case" env:"DLP_REGEX_TESTER_IGNORE_CASE"`
	Engine       string        `yaml:"engine" env:"DLP_REGEX_TESTER_ENGINE"`
	MatchTimeout time.Duration `yaml:"match_timeout" env:"DLP_REGEX_TESTER_MATCH_TIMEOUT"`

	// Output
	Markers     string `yaml:"markers" env:"DLP_REGEX_TESTER_MARKERS"`
	StartMarker string `yaml:"start_marker"`
	EndMarker   string `yaml:"end_marker"`
	Color       string `yaml:"color" env:"DLP_REGEX_TESTER_COLOR"`
	MatchColor  string `yaml:"match_color" env:"DLP_REGEX_TESTER_MATCH_COLOR"`

	// Diagnostics
	LogLevel string `yaml:"log_level" env:"DLP_REGEX_TESTER_LOG_LEVEL"`

	// Saved patterns, selected with --rule
	Rules []Rule `yaml:"rules"`
}

// Rule is a named pattern kept in the config file. Its regex is compiled
// when selected, with whichever engine is active then.
type Rule struct {
	Name        string `yaml:"name"`
	Regex       string `yaml:"regex"`
	Description string `yaml:"description"`
	IgnoreCase  bool   `yaml:"ignore_case"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine:       highlight.EngineRE2,
		MatchTimeout: highlight.DefaultMatchTimeout,
		Markers:      highlight.PresetANSI,
		Color:        ColorAlways,
		MatchColor:   highlight.DefaultColor,
		LogLevel:     logging.DefaultLevel,
	}
}

// Load loads configuration from the default config file and environment
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path and environment. An empty path
// falls back to the standard locations, where a missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check for explicit config path
	if path := os.Getenv("DLP_REGEX_TESTER_CONFIG"); path != "" {
		return path
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dlp-regex-tester", "config.yaml")
	}

	// Fall back to home directory
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "dlp-regex-tester", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from the user or standard locations
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if ignoreCase := os.Getenv("DLP_REGEX_TESTER_IGNORE_CASE"); ignoreCase != "" {
		v, err := parseBool(ignoreCase)
		if err != nil {
			return fmt.Errorf("invalid DLP_REGEX_TESTER_IGNORE_CASE value: %w", err)
		}
		cfg.IgnoreCase = v
	}

	if engine := os.Getenv("DLP_REGEX_TESTER_ENGINE"); engine != "" {
		cfg.Engine = engine
	}

	if timeout := os.Getenv("DLP_REGEX_TESTER_MATCH_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid DLP_REGEX_TESTER_MATCH_TIMEOUT: %w", err)
		}
		cfg.MatchTimeout = d
	}

	if markers := os.Getenv("DLP_REGEX_TESTER_MARKERS"); markers != "" {
		cfg.Markers = markers
	}

	if color := os.Getenv("DLP_REGEX_TESTER_COLOR"); color != "" {
		cfg.Color = color
	}

	if matchColor := os.Getenv("DLP_REGEX_TESTER_MATCH_COLOR"); matchColor != "" {
		cfg.MatchColor = matchColor
	}

	if level := os.Getenv("DLP_REGEX_TESTER_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%q (use true/false)", s)
	}
}

// Validate checks the configuration. Flags applied after loading should be
// validated again before use.
func (c *Config) Validate() error {
	if !slices.Contains(highlight.Engines(), c.Engine) {
		return fmt.Errorf("engine must be one of %v, got %q", highlight.Engines(), c.Engine)
	}

	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be non-negative")
	}

	if !slices.Contains(highlight.PresetNames(), c.Markers) {
		return fmt.Errorf("markers must be one of %v, got %q", highlight.PresetNames(), c.Markers)
	}

	switch c.Color {
	case ColorAlways, ColorNever, ColorAuto:
	default:
		return fmt.Errorf("color must be one of always, never, auto, got %q", c.Color)
	}

	if _, err := highlight.ANSIMarkers(c.MatchColor); err != nil {
		return fmt.Errorf("match_color: %w", err)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	seen := make(map[string]bool, len(c.Rules))
	for i, rule := range c.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rules[%d]: name is required", i)
		}
		if seen[rule.Name] {
			return fmt.Errorf("rules[%d]: duplicate rule name %q", i, rule.Name)
		}
		seen[rule.Name] = true

		if rule.Regex == "" {
			return fmt.Errorf("rule %q: regex is required", rule.Name)
		}
	}

	return nil
}

// Rule returns the saved rule with the given name
func (c *Config) Rule(name string) (Rule, bool) {
	for _, rule := range c.Rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return Rule{}, false
}

// ResolveMarkers picks the marker pair for output. terminal reports whether
// output goes to a color-capable terminal and only matters in auto mode.
// Without color the ansi preset falls back to brackets. Custom start and end
// markers override the preset.
func (c *Config) ResolveMarkers(terminal bool) (highlight.Markers, error) {
	preset := c.Markers
	if preset == highlight.PresetANSI {
		if c.Color == ColorNever || (c.Color == ColorAuto && !terminal) {
			preset = highlight.PresetBrackets
		}
	}

	markers, err := highlight.PresetMarkers(preset, c.MatchColor)
	if err != nil {
		return highlight.Markers{}, err
	}

	if c.StartMarker != "" {
		markers.Start = c.StartMarker
	}
	if c.EndMarker != "" {
		markers.End = c.EndMarker
	}
	return markers, nil
}
