// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package settingsstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/bracket/lib/clock"
	"github.com/bureau-foundation/bracket/lib/codec"
	"github.com/bureau-foundation/bracket/lib/exposure"
)

// FileName is the state file inside the store directory. The version
// suffix changes if the record layout ever changes incompatibly.
const FileName = "settings.v1.cbor"

// Record is the persisted form of the settings.
type Record struct {
	Settings exposure.Settings `cbor:"settings"`
	SavedAt  time.Time         `cbor:"saved_at"`
}

// Store reads and writes the settings file in one directory.
type Store struct {
	directory string
	defaults  exposure.Settings
	logger    *slog.Logger
	clock     clock.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for corrupt-file warnings and watcher
// diagnostics. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock sets the clock used to stamp saves and debounce watch
// events.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithDefaults sets the settings Load returns when nothing has been
// saved. They are sanitized. The default is exposure.Default().
func WithDefaults(settings exposure.Settings) Option {
	return func(s *Store) { s.defaults = exposure.Sanitize(settings) }
}

// New returns a Store rooted at directory. The directory is created on
// the first Save or Watch.
func New(directory string, options ...Option) *Store {
	store := &Store{
		directory: directory,
		defaults:  exposure.Default(),
		logger:    slog.New(slog.DiscardHandler),
		clock:     clock.Real(),
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// Directory returns the directory holding the state file.
func (s *Store) Directory() string { return s.directory }

// Path returns the full path of the state file.
func (s *Store) Path() string { return filepath.Join(s.directory, FileName) }

// Load reads the persisted settings. Fields absent from the file keep
// the store's defaults, and the result is always sanitized. A missing
// or corrupt file returns the defaults with a zero SavedAt.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Record{Settings: s.defaults}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading settings: %w", err)
	}

	record := Record{Settings: s.defaults}
	if err := codec.Unmarshal(data, &record); err != nil {
		s.logger.Warn("settings file is corrupt, using defaults",
			"path", s.Path(),
			"error", err,
		)
		return Record{Settings: s.defaults}, nil
	}
	record.Settings = exposure.Sanitize(record.Settings)
	return record, nil
}

// Raw returns the state file's bytes, or nil if it does not exist.
func (s *Store) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return data, nil
}

// Save sanitizes settings, stamps them with the current time, and
// atomically replaces the state file. Returns the record as written.
func (s *Store) Save(settings exposure.Settings) (Record, error) {
	record := Record{
		Settings: exposure.Sanitize(settings),
		SavedAt:  s.clock.Now().UTC().Truncate(time.Second),
	}

	data, err := codec.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return Record{}, fmt.Errorf("creating state directory: %w", err)
	}
	if err := writeAtomic(s.directory, FileName, data); err != nil {
		return Record{}, err
	}

	s.logger.Debug("settings saved",
		"path", s.Path(),
		"settings", record.Settings.Describe(),
	)
	return record, nil
}

// Update merges a partial change into the stored settings and saves
// the result.
func (s *Store) Update(update exposure.Update) (Record, error) {
	current, err := s.Load()
	if err != nil {
		return Record{}, err
	}
	return s.Save(exposure.Merge(current.Settings, update))
}

// Reset removes the state file and returns the store's defaults.
func (s *Store) Reset() (Record, error) {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Record{}, fmt.Errorf("removing settings: %w", err)
	}
	return Record{Settings: s.defaults}, nil
}

// writeAtomic writes data to a temporary sibling of name and renames it
// into place. The temporary name never equals name, so watchers keyed
// on name see only the final rename.
func writeAtomic(directory, name string, data []byte) error {
	temporary, err := os.CreateTemp(directory, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary settings file: %w", err)
	}
	temporaryPath := temporary.Name()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary settings file: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary settings file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary settings file: %w", err)
	}
	if err := os.Rename(temporaryPath, filepath.Join(directory, name)); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}
