// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import "github.com/gogpu/cubey/text"

// Option configures a Config.
//
// Example:
//
//	cfg := cubey.NewConfig(
//	    cubey.WithSize(1280, 720),
//	    cubey.WithFontPath("DejaVuSans.ttf"),
//	)
type Option func(*Config)

// WithSize sets the window size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithFontPath sets the TrueType file to bake.
func WithFontPath(path string) Option {
	return func(c *Config) {
		c.FontPath = path
	}
}

// WithFontPixelHeight sets the baked glyph height in pixels.
func WithFontPixelHeight(px float64) Option {
	return func(c *Config) {
		c.FontPixelHeight = px
	}
}

// WithAtlasSize sets the glyph atlas size in texels.
func WithAtlasSize(width, height int) Option {
	return func(c *Config) {
		c.AtlasWidth = width
		c.AtlasHeight = height
	}
}

// WithText sets the overlay origin, scale and color.
func WithText(origin text.Pen, scale float32, color text.Color) Option {
	return func(c *Config) {
		c.TextOrigin = origin
		c.TextScale = scale
		c.TextColor = color
	}
}

// WithSeed fixes the seed of the random spin speeds.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithKeyStep sets the per-frame rotation applied by held arrow keys.
func WithKeyStep(degrees float32) Option {
	return func(c *Config) {
		c.KeyStep = degrees
	}
}
