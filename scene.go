// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cubey/cube"
	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/text"
)

// Input is the keyboard state sampled once per frame.
type Input struct {
	Up, Down, Left, Right bool
}

// delta returns the rotation change for held keys: Up/Down turn about X,
// Left/Right about Y.
func (in Input) delta(step float32) (dx, dy float32) {
	if in.Up {
		dx -= step
	}
	if in.Down {
		dx += step
	}
	if in.Left {
		dy -= step
	}
	if in.Right {
		dy += step
	}
	return dx, dy
}

// BakeFont loads cfg.FontPath and bakes it with cfg.BakeConfig. Errors are
// *text.BakeError.
func BakeFont(cfg Config) (*text.FontAtlas, error) {
	data, err := text.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	return text.Bake(data, cfg.BakeConfig())
}

// Scene draws one frame of cube plus overlay. It is not safe for
// concurrent use.
type Scene struct {
	cfg  Config
	dev  gpucore.Device
	cube *cube.Renderer
	text *text.Renderer
	view mgl32.Mat4

	frames uint64
}

// NewScene creates both renderers on dev. The atlas is uploaded if it has
// no texture yet.
func NewScene(dev gpucore.Device, atlas *text.FontAtlas, cfg Config) (*Scene, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	propagateLogger(dev)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))

	cr, err := cube.NewRenderer(dev, cube.RandomRotation(rng))
	if err != nil {
		return nil, fmt.Errorf("cubey: %w", err)
	}
	tr, err := text.NewRenderer(dev, atlas, text.RendererConfig{
		ViewportWidth:  cfg.Width,
		ViewportHeight: cfg.Height,
	})
	if err != nil {
		cr.Close()
		return nil, fmt.Errorf("cubey: %w", err)
	}

	s := &Scene{
		cfg:  cfg,
		dev:  dev,
		cube: cr,
		text: tr,
		view: cube.View(cfg.CameraDistance),
	}
	Logger().Info("cubey: scene ready",
		"seed", seed,
		"speed_x", cr.Rotation.SpeedX,
		"speed_y", cr.Rotation.SpeedY,
		"cube_program", cr.Program() != gpucore.InvalidID,
		"text_program", tr.Program() != gpucore.InvalidID)
	return s, nil
}

// Frame advances the rotation and records one frame for a framebuffer of
// width×height pixels: the cube with depth testing on, then the overlay
// with depth testing off. Presenting is left to the caller.
//
// Draw failures are returned but leave the scene usable; the next frame
// tries again.
func (s *Scene) Frame(in Input, width, height int) error {
	s.frames++

	dx, dy := in.delta(s.cfg.KeyStep)
	s.cube.Rotation.Nudge(dx, dy)
	s.cube.Rotation.Update()

	if width <= 0 || height <= 0 {
		// minimized
		return nil
	}

	s.dev.SetDepthTest(true)
	cubeErr := s.cube.Draw(s.view, s.projection(width, height))

	s.dev.SetDepthTest(false)
	s.text.SetViewport(width, height)
	rot := s.cube.Rotation
	o := s.cfg.TextOrigin
	_, textErr := s.text.Render(RotationLabel(rot.X, rot.Y), o.X, o.Y, s.cfg.TextScale, s.cfg.TextColor)

	if err := errors.Join(cubeErr, textErr); err != nil {
		Logger().Warn("cubey: frame draw failed", "frame", s.frames, "err", err)
		return err
	}
	return nil
}

func (s *Scene) projection(width, height int) mgl32.Mat4 {
	aspect := s.cfg.Aspect
	if aspect == 0 {
		aspect = float32(width) / float32(height)
	}
	return cube.Perspective(s.cfg.FOVDegrees, aspect, s.cfg.Near, s.cfg.Far)
}

// Rotation returns the current cube rotation.
func (s *Scene) Rotation() cube.Rotation {
	return s.cube.Rotation
}

// Label returns the overlay text for the current rotation.
func (s *Scene) Label() string {
	return RotationLabel(s.cube.Rotation.X, s.cube.Rotation.Y)
}

// Frames returns the number of Frame calls so far.
func (s *Scene) Frames() uint64 {
	return s.frames
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// Close releases the GPU resources of both renderers.
func (s *Scene) Close() {
	s.text.Close()
	s.cube.Close()
}
