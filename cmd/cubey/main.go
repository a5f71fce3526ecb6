// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command cubey opens a window showing a rotating, vertex-colored cube
// with a text overlay reporting the rotation angles.
//
// Arrow keys nudge the rotation; Escape quits.
//
// Usage:
//
//	cubey [-font arial.ttf] [-width 900] [-height 700] [-seed N] [-v]
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/cubey"
	"github.com/gogpu/cubey/backend/native"
	"github.com/gogpu/cubey/text"
)

func main() {
	def := cubey.DefaultConfig()
	var (
		fontPath = flag.String("font", def.FontPath, "TrueType font for the overlay")
		width    = flag.Int("width", def.Width, "window width")
		height   = flag.Int("height", def.Height, "window height")
		seed     = flag.Uint64("seed", 0, "rotation speed seed (0 picks one at random)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cubey.SetLogger(logger)

	cfg := cubey.NewConfig(
		cubey.WithFontPath(*fontPath),
		cubey.WithSize(*width, *height),
		cubey.WithSeed(*seed),
	)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	atlas, err := cubey.BakeFont(cfg)
	if err != nil {
		logger.Error("failed to bake font", "path", cfg.FontPath, "err", err)
		os.Exit(1)
	}

	if err := run(cfg, atlas, logger); err != nil {
		logger.Error("cubey exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg cubey.Config, atlas *text.FontAtlas, logger *slog.Logger) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height))

	var (
		keys  keyboard
		dev   *native.Device
		scene *cubey.Scene
		ready bool
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if !ready {
			ready = true
			var err error
			provider := app.GPUContextProvider()
			if provider == nil {
				logger.Error("no GPU context provider")
				app.Quit()
				return
			}
			if dev, err = openDevice(provider); err != nil {
				logger.Error("failed to open device", "err", err)
				app.Quit()
				return
			}
			c := cfg.ClearColor
			dev.SetClearColor(gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]})
			if scene, err = cubey.NewScene(dev, atlas, cfg); err != nil {
				logger.Error("failed to create scene", "err", err)
				app.Quit()
				return
			}
			logger.Info("device ready", "format", dev.Format())
		}
		if scene == nil {
			return
		}

		// Frame logs its own draw failures.
		_ = scene.Frame(keys.snapshot(), dc.Width(), dc.Height())

		sw, sh := dc.SurfaceSize()
		view := halView(dc.SurfaceView())
		if view == nil || sw <= 0 || sh <= 0 {
			return
		}
		if err := dev.EndFrame(view, uint32(sw), uint32(sh)); err != nil {
			logger.Warn("frame submit failed", "frame", scene.Frames(), "err", err)
		}
	})

	events := app.EventSource()
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			app.Quit()
			return
		}
		keys.set(key, true)
	})
	events.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		keys.set(key, false)
	})

	app.OnClose(func() {
		if scene != nil {
			scene.Close()
		}
		if dev != nil {
			if err := dev.Close(); err != nil {
				logger.Warn("device close failed", "err", err)
			}
		}
	})

	return app.Run()
}
