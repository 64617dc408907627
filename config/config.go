package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDir names the per-user configuration directory.
const appDir = "roi-editor"

// Config holds runtime configuration for the editor.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool `json:"debug"`
	DarkMode bool `json:"dark_mode"`

	// Window and canvas geometry in screen pixels
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// Editing
	HandleThreshold float64 `json:"handle_threshold"` // display units
	NewROIInset     float64 `json:"new_roi_inset"`
	NewROIName      string  `json:"new_roi_name"`
	DragThresholdPx int     `json:"drag_threshold_px"`
	MaxZoom         float64 `json:"max_zoom"`

	ImageCacheSize int    `json:"image_cache_size"`
	CaptureDir     string `json:"capture_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		DarkMode:        false,
		WindowWidth:     1280,
		WindowHeight:    820,
		CanvasWidth:     960,
		CanvasHeight:    640,
		HandleThreshold: 10,
		NewROIInset:     0.3,
		NewROIName:      "new_roi",
		DragThresholdPx: 3,
		MaxZoom:         32,
		ImageCacheSize:  4,
		CaptureDir:      filepath.Join(xdg.UserDirs.Pictures, appDir),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, "config.json")
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.WindowWidth < 320 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = d.WindowHeight
	}
	if c.CanvasWidth < 100 {
		c.CanvasWidth = d.CanvasWidth
	}
	if c.CanvasHeight < 100 {
		c.CanvasHeight = d.CanvasHeight
	}
	if c.HandleThreshold <= 0 {
		c.HandleThreshold = d.HandleThreshold
	}
	if c.NewROIInset < 0 || c.NewROIInset >= 0.5 {
		c.NewROIInset = d.NewROIInset
	}
	if c.NewROIName == "" {
		c.NewROIName = d.NewROIName
	}
	if c.DragThresholdPx < 1 {
		c.DragThresholdPx = d.DragThresholdPx
	}
	if c.MaxZoom < 1 {
		c.MaxZoom = d.MaxZoom
	}
	if c.ImageCacheSize < 1 {
		c.ImageCacheSize = d.ImageCacheSize
	}
	if c.CaptureDir == "" {
		c.CaptureDir = d.CaptureDir
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format, creating
// the parent directory if needed.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
