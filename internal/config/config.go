// Package config resolves gantry settings from defaults, an optional YAML
// file and GANTRY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultDir is the per-user directory holding the database and config file.
const DefaultDir = "~/.gantry"

// Config holds all user-tunable settings.
type Config struct {
	DBPath      string         `yaml:"db_path"`
	LogUseCases bool           `yaml:"log_use_cases"`
	Timeline    TimelineConfig `yaml:"timeline"`
	Render      RenderConfig   `yaml:"render"`
}

// TimelineConfig feeds timeline.Options.
type TimelineConfig struct {
	MinColumnWidthPx float64 `yaml:"min_column_width_px"`
	MinBarWidthPx    float64 `yaml:"min_bar_width_px"`
	LaneHeightPx     float64 `yaml:"lane_height_px"`
	LaneGapPx        float64 `yaml:"lane_gap_px"`
	SortTasksByStart bool    `yaml:"sort_tasks_by_start"`
	FallbackMonths   int     `yaml:"fallback_months"`
}

// RenderConfig controls the terminal renderer and the interactive view.
type RenderConfig struct {
	// CellWidthPx is how many layout pixels one terminal column stands for.
	CellWidthPx      float64 `yaml:"cell_width_px"`
	DefaultColumns   int     `yaml:"default_columns"`
	ResizeDebounceMs int     `yaml:"resize_debounce_ms"`
	LabelColumns     int     `yaml:"label_columns"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	opts := timeline.DefaultOptions()
	return Config{
		DBPath: filepath.Join(DefaultDir, "gantry.db"),
		Timeline: TimelineConfig{
			MinColumnWidthPx: opts.MinColumnWidthPx,
			MinBarWidthPx:    opts.MinBarWidthPx,
			LaneHeightPx:     opts.LaneHeightPx,
			LaneGapPx:        opts.LaneGapPx,
			SortTasksByStart: opts.SortTasksByStart,
			FallbackMonths:   3,
		},
		Render: RenderConfig{
			CellWidthPx:      8,
			DefaultColumns:   120,
			ResizeDebounceMs: 120,
			LabelColumns:     24,
		},
	}
}

// Load builds the effective configuration. The file named by GANTRY_CONFIG
// (default ~/.gantry/config.yaml) is optional; a missing default file is not
// an error, a missing explicit one is.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, explicit := os.LookupEnv("GANTRY_CONFIG")
	if !explicit || path == "" {
		path = filepath.Join(DefaultDir, "config.yaml")
		explicit = false
	}
	if err := loadFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)

	expanded, err := homedir.Expand(cfg.DBPath)
	if err != nil {
		return Config{}, fmt.Errorf("resolving db path %q: %w", cfg.DBPath, err)
	}
	cfg.DBPath = expanded

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("resolving config path %q: %w", path, err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", resolved, err)
	}
	return nil
}

// applyEnv overrides file values. Malformed numbers are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTRY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTRY_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	envFloat("GANTRY_MIN_COLUMN_WIDTH_PX", &cfg.Timeline.MinColumnWidthPx)
	envFloat("GANTRY_MIN_BAR_WIDTH_PX", &cfg.Timeline.MinBarWidthPx)
	envFloat("GANTRY_LANE_HEIGHT_PX", &cfg.Timeline.LaneHeightPx)
	envFloat("GANTRY_LANE_GAP_PX", &cfg.Timeline.LaneGapPx)
	envFloat("GANTRY_CELL_WIDTH_PX", &cfg.Render.CellWidthPx)
	envInt("GANTRY_FALLBACK_MONTHS", &cfg.Timeline.FallbackMonths)
	envInt("GANTRY_RESIZE_DEBOUNCE_MS", &cfg.Render.ResizeDebounceMs)
	envInt("GANTRY_DEFAULT_COLUMNS", &cfg.Render.DefaultColumns)
	if v := os.Getenv("GANTRY_SORT_TASKS_BY_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Timeline.SortTasksByStart = b
		}
	}
}

func envFloat(name string, dst *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
		*dst = f
	}
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		*dst = n
	}
}

// Validate rejects settings the renderer cannot work with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Render.CellWidthPx <= 0 {
		return fmt.Errorf("render.cell_width_px must be positive, got %g", c.Render.CellWidthPx)
	}
	if c.Timeline.MinColumnWidthPx <= 0 {
		return fmt.Errorf("timeline.min_column_width_px must be positive, got %g", c.Timeline.MinColumnWidthPx)
	}
	if c.Timeline.FallbackMonths < 1 {
		return fmt.Errorf("timeline.fallback_months must be at least 1, got %d", c.Timeline.FallbackMonths)
	}
	return nil
}

// TimelineOptions converts the timeline section into engine options.
func (c Config) TimelineOptions() timeline.Options {
	return timeline.Options{
		MinColumnWidthPx: c.Timeline.MinColumnWidthPx,
		MinBarWidthPx:    c.Timeline.MinBarWidthPx,
		LaneHeightPx:     c.Timeline.LaneHeightPx,
		LaneGapPx:        c.Timeline.LaneGapPx,
		SortTasksByStart: c.Timeline.SortTasksByStart,
	}
}

// ResizeDebounce is the quiet period before the view re-lays out after a
// terminal resize.
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.Render.ResizeDebounceMs) * time.Millisecond
}
