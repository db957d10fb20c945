// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/plan"
	"github.com/bureau-foundation/bracket/lib/preset"
	"github.com/bureau-foundation/bracket/lib/settingsstore"
	"github.com/bureau-foundation/bracket/lib/shutter"
	"github.com/bureau-foundation/bracket/lib/version"
	"github.com/bureau-foundation/bracket/lib/window"
)

// Options configures a Handler.
type Options struct {
	// Settings are the base settings that query parameters override.
	Settings exposure.Settings

	// Presets resolves ?preset= on /v1/plan. Defaults to the built-in
	// presets.
	Presets *preset.Library

	// Logger receives one line per request. Defaults to discarding.
	Logger *slog.Logger
}

// Handler routes the JSON API. Safe for concurrent use.
type Handler struct {
	router  chi.Router
	presets *preset.Library
	logger  *slog.Logger
	tables  shutter.TableCache

	mutex    sync.RWMutex
	settings exposure.Settings
}

// NewHandler builds the router. Base settings are sanitized.
func NewHandler(options Options) *Handler {
	if options.Presets == nil {
		options.Presets = preset.NewLibrary(preset.Builtin()...)
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	handler := &Handler{
		presets:  options.Presets,
		logger:   options.Logger,
		settings: exposure.Sanitize(options.Settings),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(handler.logger))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("%s not allowed on %s", r.Method, r.URL.Path))
	})

	router.Get("/healthz", handler.handleHealth)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/settings", handler.handleSettings)
		r.Get("/speeds", handler.handleSpeeds)
		r.Get("/format", handler.handleFormat)
		r.Get("/parse", handler.handleParse)
		r.Get("/sequence", handler.handleSequence)
		r.Get("/window", handler.handleWindow)
		r.Get("/plan", handler.handlePlan)
	})
	handler.router = router
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Settings returns the current base settings.
func (h *Handler) Settings() exposure.Settings {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.settings
}

// SetSettings replaces the base settings after sanitizing them.
func (h *Handler) SetSettings(settings exposure.Settings) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.settings = exposure.Sanitize(settings)
}

// Follow applies every record from updates as the new base settings
// until ctx is cancelled or updates closes.
func (h *Handler) Follow(ctx context.Context, updates <-chan settingsstore.Record) {
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-updates:
			if !ok {
				return
			}
			h.SetSettings(record.Settings)
			h.logger.Info("base settings reloaded", "settings", record.Settings.Describe())
		}
	}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version version.BuildInfo `json:"version"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.Current()})
}

func (h *Handler) handleSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings())
}

type speedsResponse struct {
	Settings    exposure.Settings   `json:"settings"`
	Orientation shutter.Orientation `json:"orientation"`
	Count       int                 `json:"count"`
	Options     []shutter.Option    `json:"options"`
}

func (h *Handler) handleSpeeds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	settings, err := settingsFromQuery(h.Settings(), query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	orientation, err := orientationFromQuery(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	table := settings.CachedTable(&h.tables).Oriented(orientation)
	writeJSON(w, http.StatusOK, speedsResponse{
		Settings:    settings,
		Orientation: table.Orientation,
		Count:       table.Len(),
		Options:     nonNil(table.Options),
	})
}

// formatResponse omits seconds when they have no JSON representation;
// the label is then "-".
type formatResponse struct {
	Seconds *float64 `json:"seconds,omitempty"`
	Label   string   `json:"label"`
}

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("seconds") == "" {
		writeError(w, http.StatusBadRequest, errors.New("seconds is required"))
		return
	}
	seconds, err := numberParam(query, "seconds")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	settings, err := settingsFromQuery(h.Settings(), query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	response := formatResponse{Label: shutter.Format(seconds, settings.IncludeThirdStops)}
	if !math.IsNaN(seconds) && !math.IsInf(seconds, 0) {
		response.Seconds = &seconds
	}
	writeJSON(w, http.StatusOK, response)
}

type parseResponse struct {
	Text     string  `json:"text"`
	Seconds  float64 `json:"seconds"`
	Label    string  `json:"label"`
	FullStop bool    `json:"full_stop"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}
	seconds, ok := shutter.Parse(text)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("cannot parse shutter speed %q", text))
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Text:     text,
		Seconds:  seconds,
		Label:    shutter.Format(seconds, true),
		FullStop: shutter.IsFullStop(seconds),
	})
}

type sequenceResponse struct {
	Settings    exposure.Settings   `json:"settings"`
	Anchor      bracket.Anchor      `json:"anchor"`
	Orientation shutter.Orientation `json:"orientation"`
	bracket.Result
	Labels []string `json:"labels"`
}

func (h *Handler) handleSequence(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	settings, err := settingsFromQuery(h.Settings(), query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	anchor, err := anchorFromQuery(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	orientation, err := orientationFromQuery(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	anchorSeconds, err := requiredSpeed(query, "speed")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	table := settings.CachedTable(&h.tables).Oriented(orientation)
	result := bracket.Sequence(anchorSeconds, anchor, settings.BracketCount, settings.EVSpacing,
		table, settings.IncludeThirdStops)

	labels := make([]string, len(result.Sequence))
	for i, seconds := range result.Sequence {
		labels[i] = shutter.Format(seconds, settings.IncludeThirdStops)
	}
	writeJSON(w, http.StatusOK, sequenceResponse{
		Settings:    settings,
		Anchor:      anchor,
		Orientation: orientation,
		Result:      result,
		Labels:      labels,
	})
}

type windowResponse struct {
	Settings exposure.Settings `json:"settings"`
	Viewport window.Viewport   `json:"viewport"`
	RowCount int               `json:"row_count"`
	window.Snapshot
	Rows []window.Row `json:"rows,omitempty"`
}

// handleWindow positions the viewport either on a row index (?row=)
// or at a raw scroll offset (?scroll_y=). ?rows=true includes every
// materialized row.
func (h *Handler) handleWindow(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	settings, err := settingsFromQuery(h.Settings(), query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, heightErr := floatParam(query, "height", 9)
	rowHeight, rowHeightErr := floatParam(query, "row_height", 1)
	scrollY, scrollErr := floatParam(query, "scroll_y", 0)
	row, rowErr := floatParam(query, "row", -1)
	if err := errors.Join(heightErr, rowHeightErr, scrollErr, rowErr); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if height <= 0 || rowHeight <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("height and row_height must be positive"))
		return
	}

	model := window.New(settings.CachedTable(&h.tables), settings.Step(), settings.Half())
	viewport := window.NewViewport(scrollY, height, rowHeight)
	if row >= 0 {
		viewport.ScrollY = window.ScrollOffsetForRow(int(row), viewport)
	}

	response := windowResponse{
		Settings: settings,
		Viewport: viewport,
		RowCount: len(model.Rows()),
		Snapshot: model.At(viewport),
	}
	if query.Get("rows") == "true" {
		response.Rows = model.Rows()
	}
	writeJSON(w, http.StatusOK, response)
}

type planResponse struct {
	plan.Plan
	Preset      string           `json:"preset,omitempty"`
	Fingerprint plan.Fingerprint `json:"fingerprint"`
}

// handlePlan builds a shoot plan. ?preset= supplies the anchor and may
// override the shot count and spacing; explicit settings parameters
// still win over the preset.
func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	base := h.Settings()

	var presetName string
	var anchor bracket.Anchor
	var anchorSeconds float64

	if name := query.Get("preset"); name != "" {
		selected, err := h.presets.Lookup(name)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, preset.ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, err)
			return
		}
		anchorSeconds, err = selected.AnchorSeconds()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		presetName = selected.Name
		anchor = selected.Anchor
		base = selected.Apply(base)
	} else {
		var err error
		if anchor, err = anchorFromQuery(query); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if anchorSeconds, err = requiredSpeed(query, "speed"); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	settings, err := settingsFromQuery(base, query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	built, err := plan.Build(settings, anchor, anchorSeconds)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	fingerprint, err := built.Fingerprint()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Plan: built, Preset: presetName, Fingerprint: fingerprint})
}

// writeJSON encodes value before committing the status, so an
// unencodable value becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: fmt.Sprintf("encoding response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
