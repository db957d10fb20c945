// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "BRACKET_CONFIG"

// Config is the master configuration for bracket.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Defaults are the exposure settings used when no settings have
	// been saved yet.
	Defaults exposure.Settings `yaml:"defaults"`

	// Camera names the entry in Cameras applied on top of the saved
	// settings. Empty means none.
	Camera string `yaml:"camera"`

	// Cameras describes camera bodies by name.
	Cameras map[string]CameraConfig `yaml:"cameras,omitempty"`

	// TUI configures the interactive wheel.
	TUI TUIConfig `yaml:"tui"`

	// HTTP configures "bracket serve".
	HTTP HTTPConfig `yaml:"http"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for bracket data.
	Root string `yaml:"root"`

	// State holds the persisted settings file.
	State string `yaml:"state"`

	// Presets holds user preset files (*.jsonc, *.json).
	Presets string `yaml:"presets"`
}

// CameraConfig limits settings to what a camera body can shoot.
// Speeds are written as shutter labels ("1/8000", `30"`) or numbers of
// seconds.
type CameraConfig struct {
	// MinShutter is the shortest speed the body supports.
	MinShutter string `yaml:"min_shutter"`

	// MaxShutter is the longest speed the body supports.
	MaxShutter string `yaml:"max_shutter"`

	// ThirdStops, when set, forces third-stop stepping on or off.
	ThirdStops *bool `yaml:"third_stops,omitempty"`
}

// TUIConfig configures the wheel.
type TUIConfig struct {
	// RowHeight is the number of terminal lines per wheel row.
	RowHeight int `yaml:"row_height"`

	// VisibleRows is how many rows the wheel shows when the terminal
	// size is unknown.
	VisibleRows int `yaml:"visible_rows"`
}

// HTTPConfig configures the HTTP API server.
type HTTPConfig struct {
	// Listen is the TCP address to serve on.
	Listen string `yaml:"listen"`
}

// Default returns the default configuration with paths expanded.
func Default() *Config {
	cfg := unexpandedDefault()
	cfg.expandVariables()
	return cfg
}

// unexpandedDefault keeps state and presets relative to
// ${BRACKET_ROOT}, so a file that only moves the root moves both.
func unexpandedDefault() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:    "${HOME}/.local/share/bracket",
			State:   "${BRACKET_ROOT}/state",
			Presets: "${BRACKET_ROOT}/presets",
		},
		LogLevel: "info",
		Defaults: exposure.Default(),
		TUI: TUIConfig{
			RowHeight:   1,
			VisibleRows: 9,
		},
		HTTP: HTTPConfig{
			Listen: "127.0.0.1:8417",
		},
	}
}

// Load loads configuration from the BRACKET_CONFIG environment
// variable. Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your bracket.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their Default values.
func LoadFile(path string) (*Config, error) {
	cfg := unexpandedDefault()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	homeDir, _ := os.UserHomeDir()
	vars := map[string]string{"HOME": homeDir}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["BRACKET_ROOT"] = c.Paths.Root

	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Paths.Presets = expandVars(c.Paths.Presets, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. vars takes
// precedence over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.State == "" {
		errs = append(errs, errors.New("paths.state is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Defaults.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}

	if c.Camera != "" {
		if _, ok := c.Cameras[c.Camera]; !ok {
			errs = append(errs, fmt.Errorf("camera %q is not defined in cameras (have %v)", c.Camera, c.CameraNames()))
		}
	}
	for _, name := range c.CameraNames() {
		if err := c.Cameras[name].validate(); err != nil {
			errs = append(errs, fmt.Errorf("cameras.%s: %w", name, err))
		}
	}

	if c.TUI.RowHeight < 1 {
		errs = append(errs, fmt.Errorf("tui.row_height must be at least 1, got %d", c.TUI.RowHeight))
	}
	if c.TUI.VisibleRows < 1 {
		errs = append(errs, fmt.Errorf("tui.visible_rows must be at least 1, got %d", c.TUI.VisibleRows))
	}
	if _, _, err := net.SplitHostPort(c.HTTP.Listen); err != nil {
		errs = append(errs, fmt.Errorf("http.listen: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}
	return level, nil
}

// CameraNames returns the configured camera names sorted.
func (c *Config) CameraNames() []string {
	return slices.Sorted(maps.Keys(c.Cameras))
}

// Settings applies the named camera to base. An empty name selects
// c.Camera; if that is also empty base is returned unchanged.
func (c *Config) Settings(base exposure.Settings, camera string) (exposure.Settings, error) {
	if camera == "" {
		camera = c.Camera
	}
	if camera == "" {
		return base, nil
	}

	body, ok := c.Cameras[camera]
	if !ok {
		return base, fmt.Errorf("unknown camera %q (have %v)", camera, c.CameraNames())
	}
	if err := body.validate(); err != nil {
		return base, fmt.Errorf("camera %q: %w", camera, err)
	}
	return body.apply(base), nil
}

func (b CameraConfig) validate() error {
	var errs []error
	minSeconds, minOK := parseSpeed(b.MinShutter)
	maxSeconds, maxOK := parseSpeed(b.MaxShutter)
	if b.MinShutter != "" && !minOK {
		errs = append(errs, fmt.Errorf("min_shutter %q is not a shutter speed", b.MinShutter))
	}
	if b.MaxShutter != "" && !maxOK {
		errs = append(errs, fmt.Errorf("max_shutter %q is not a shutter speed", b.MaxShutter))
	}
	if minOK && maxOK && minSeconds >= maxSeconds {
		errs = append(errs, fmt.Errorf("min_shutter %s must be shorter than max_shutter %s", b.MinShutter, b.MaxShutter))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (b CameraConfig) apply(settings exposure.Settings) exposure.Settings {
	if seconds, ok := parseSpeed(b.MinShutter); ok {
		settings.MinShutterSeconds = seconds
	}
	if seconds, ok := parseSpeed(b.MaxShutter); ok {
		settings.MaxShutterSeconds = seconds
	}
	if b.ThirdStops != nil {
		settings.IncludeThirdStops = *b.ThirdStops
	}
	return settings
}

func parseSpeed(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	return shutter.Parse(text)
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.State, c.Paths.Presets} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
