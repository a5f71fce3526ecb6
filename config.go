// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import (
	"github.com/gogpu/cubey/text"
)

// Config holds everything a Scene and its window need.
type Config struct {
	// Window size in screen units and title.
	Width  int
	Height int
	Title  string

	// FontPath is the TrueType file baked at startup.
	FontPath string

	// FontPixelHeight and the atlas size feed text.BakeConfig.
	FontPixelHeight float64
	AtlasWidth      int
	AtlasHeight     int

	// Overlay placement: baseline origin in pixels from the top-left,
	// glyph scale, and color.
	TextOrigin text.Pen
	TextScale  float32
	TextColor  text.Color

	// ClearColor is the RGBA background.
	ClearColor [4]float64

	// Camera. Aspect 0 uses the framebuffer aspect ratio.
	FOVDegrees     float32
	Aspect         float32
	Near           float32
	Far            float32
	CameraDistance float32

	// Seed seeds the random spin speeds. Zero picks a random seed.
	Seed uint64

	// KeyStep is the rotation in degrees applied per frame while an arrow
	// key is held.
	KeyStep float32
}

// DefaultConfig returns the stock demo configuration.
func DefaultConfig() Config {
	return Config{
		Width:           900,
		Height:          700,
		Title:           "Cubey",
		FontPath:        "arial.ttf",
		FontPixelHeight: 48,
		AtlasWidth:      512,
		AtlasHeight:     512,
		TextOrigin:      text.Pen{X: 25, Y: 50},
		TextScale:       1,
		TextColor:       text.White,
		ClearColor:      [4]float64{0.1, 0.1, 0.1, 1},
		FOVDegrees:      45,
		Aspect:          800.0 / 600.0,
		Near:            0.1,
		Far:             100,
		CameraDistance:  3,
		KeyStep:         2,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks the configuration and returns a *ConfigError for the
// first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	case c.FontPath == "":
		return &ConfigError{Field: "FontPath", Reason: "must not be empty"}
	case c.FontPixelHeight <= 0:
		return &ConfigError{Field: "FontPixelHeight", Reason: "must be positive"}
	case c.AtlasWidth <= 0:
		return &ConfigError{Field: "AtlasWidth", Reason: "must be positive"}
	case c.AtlasHeight <= 0:
		return &ConfigError{Field: "AtlasHeight", Reason: "must be positive"}
	case c.TextScale <= 0:
		return &ConfigError{Field: "TextScale", Reason: "must be positive"}
	case c.FOVDegrees <= 0 || c.FOVDegrees >= 180:
		return &ConfigError{Field: "FOVDegrees", Reason: "must be in (0, 180)"}
	case c.Aspect < 0:
		return &ConfigError{Field: "Aspect", Reason: "must not be negative"}
	case c.Near <= 0:
		return &ConfigError{Field: "Near", Reason: "must be positive"}
	case c.Far <= c.Near:
		return &ConfigError{Field: "Far", Reason: "must be greater than Near"}
	case c.CameraDistance <= 0:
		return &ConfigError{Field: "CameraDistance", Reason: "must be positive"}
	case c.KeyStep < 0:
		return &ConfigError{Field: "KeyStep", Reason: "must not be negative"}
	}
	return nil
}

// BakeConfig returns the font bake parameters.
func (c Config) BakeConfig() text.BakeConfig {
	bc := text.DefaultBakeConfig()
	bc.PixelHeight = c.FontPixelHeight
	bc.AtlasWidth = c.AtlasWidth
	bc.AtlasHeight = c.AtlasHeight
	return bc
}
