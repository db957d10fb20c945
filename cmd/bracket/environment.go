// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/config"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/preset"
	"github.com/bureau-foundation/bracket/lib/settingsstore"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// configParams selects the configuration file and log verbosity. Every
// command that reads settings or presets embeds it.
type configParams struct {
	ConfigFile string `json:"-" flag:"config" desc:"path to bracket.yaml (default: $BRACKET_CONFIG, else built-in defaults)"`
	Camera     string `json:"-" flag:"camera" desc:"camera body from the config's cameras section"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log at debug level"`
}

// environment is the loaded configuration plus the stores it names.
type environment struct {
	config *config.Config
	store  *settingsstore.Store
	camera string
	logger *slog.Logger
}

// loadConfig reads --config, then $BRACKET_CONFIG. With neither set the
// built-in defaults apply.
func (p *configParams) loadConfig() (*config.Config, error) {
	path := p.ConfigFile
	if path == "" {
		path = os.Getenv(config.EnvironmentVariable)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return cfg, nil
}

// open loads and validates the configuration and sets the log level.
func (p *configParams) open(logger *slog.Logger) (*environment, error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	if p.Verbose {
		level = slog.LevelDebug
	}
	cli.LogLevel.Set(level)

	store := settingsstore.New(cfg.Paths.State,
		settingsstore.WithLogger(logger),
		settingsstore.WithDefaults(cfg.Defaults),
	)
	logger.Debug("configuration loaded",
		"state", cfg.Paths.State,
		"presets", cfg.Paths.Presets,
		"camera", p.Camera,
	)
	return &environment{config: cfg, store: store, camera: p.Camera, logger: logger}, nil
}

// settings returns the saved settings with the selected camera applied.
func (e *environment) settings() (exposure.Settings, error) {
	record, err := e.store.Load()
	if err != nil {
		return exposure.Settings{}, cli.Internal("%w", err)
	}
	settings, err := e.config.Settings(record.Settings, e.camera)
	if err != nil {
		return exposure.Settings{}, cli.NotFound("%w", err)
	}
	return settings, nil
}

// presets loads the built-in presets and the presets directory.
func (e *environment) presets() (*preset.Library, error) {
	library, err := preset.LoadDir(e.config.Paths.Presets)
	if err != nil {
		return nil, cli.Validation("loading presets: %w", err)
	}
	return library, nil
}

// settingsFlags override individual settings for one invocation. Zero
// values leave the setting alone.
type settingsFlags struct {
	count      int
	spacing    int
	min        string
	max        string
	thirdStops optionalBool
}

// AddFlags implements cli.FlagBinder.
func (f *settingsFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.IntVarP(&f.count, "count", "n", 0, "shots per bracket: 3, 5, 7, 9 or 11")
	flagSet.IntVar(&f.spacing, "ev", 0, "stops between shots: 1, 2 or 3")
	flagSet.StringVar(&f.min, "min", "", `shortest usable speed, e.g. 1/8000`)
	flagSet.StringVar(&f.max, "max", "", `longest usable speed, e.g. 30"`)
	flagSet.Var(&f.thirdStops, "third-stops", "step in third stops (true or false)")
	flagSet.Lookup("third-stops").NoOptDefVal = "true"
	flagSet.Var(fullStopsValue{&f.thirdStops}, "full-stops", "step in full stops only")
	flagSet.Lookup("full-stops").NoOptDefVal = "true"
}

// update converts the flags to a partial settings change.
func (f *settingsFlags) update() (exposure.Update, error) {
	var update exposure.Update
	if f.count != 0 {
		update.BracketCount = &f.count
	}
	if f.spacing != 0 {
		update.EVSpacing = &f.spacing
	}
	if f.min != "" {
		seconds, ok := shutter.Parse(f.min)
		if !ok {
			return update, cli.Validation("--min: cannot parse shutter speed %q", f.min)
		}
		update.MinShutterSeconds = &seconds
	}
	if f.max != "" {
		seconds, ok := shutter.Parse(f.max)
		if !ok {
			return update, cli.Validation("--max: cannot parse shutter speed %q", f.max)
		}
		update.MaxShutterSeconds = &seconds
	}
	if f.thirdStops.set {
		value := f.thirdStops.value
		update.IncludeThirdStops = &value
	}
	return update, nil
}

// apply overlays the flags on base. Explicit flags are validated, not
// sanitized: a bad value is an error rather than a silent default.
func (f *settingsFlags) apply(base exposure.Settings) (exposure.Settings, error) {
	update, err := f.update()
	if err != nil {
		return exposure.Settings{}, err
	}
	settings := update.Apply(base)
	if err := settings.Validate(); err != nil {
		return exposure.Settings{}, cli.Validation("%w", err)
	}
	return settings, nil
}

// optionalBool is a pflag.Value that remembers whether it was set.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(text string) error {
	value, err := strconv.ParseBool(text)
	if err != nil {
		return fmt.Errorf("%q is not a boolean", text)
	}
	b.set, b.value = true, value
	return nil
}

func (b *optionalBool) Type() string { return "bool" }

// fullStopsValue is the inverse view of a third-stops optionalBool.
type fullStopsValue struct {
	target *optionalBool
}

func (v fullStopsValue) String() string {
	if v.target == nil || !v.target.set {
		return ""
	}
	return strconv.FormatBool(!v.target.value)
}

func (v fullStopsValue) Set(text string) error {
	value, err := strconv.ParseBool(text)
	if err != nil {
		return fmt.Errorf("%q is not a boolean", text)
	}
	v.target.set, v.target.value = true, !value
	return nil
}

func (v fullStopsValue) Type() string { return "bool" }

// effective maps saved records to the settings commands run with: each
// record passes through the selected camera. The returned channel
// closes when updates closes or ctx is cancelled.
func (e *environment) effective(ctx context.Context, updates <-chan settingsstore.Record) <-chan settingsstore.Record {
	mapped := make(chan settingsstore.Record)
	go func() {
		defer close(mapped)
		for record := range updates {
			settings, err := e.config.Settings(record.Settings, e.camera)
			if err != nil {
				e.logger.Warn("ignoring camera for settings update", "camera", e.camera, "error", err)
				settings = record.Settings
			}
			record.Settings = settings
			select {
			case mapped <- record:
			case <-ctx.Done():
				return
			}
		}
	}()
	return mapped
}
