// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cubey renders a rotating cube with a live text overlay.
//
// # Overview
//
// A [Scene] owns the two pipelines of a frame: the cube (depth tested) and
// the text overlay that reports the rotation angles (drawn on top with
// depth testing disabled). Both run against a [gpucore.Device], so a scene
// can be driven by the wgpu HAL (backend/native) or recorded in memory
// (backend/recorder).
//
// # Quick Start
//
//	cfg := cubey.NewConfig(cubey.WithFontPath("arial.ttf"))
//	atlas, err := cubey.BakeFont(cfg)
//	if err != nil {
//	    log.Fatal(err) // a missing font is the one fatal error
//	}
//	scene, err := cubey.NewScene(dev, atlas, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer scene.Close()
//
//	for running {
//	    scene.Frame(input, width, height)
//	}
//
// # Error Handling
//
// Shader compile and link failures are logged and leave the affected
// pipeline blank; they never stop the frame loop. Only a font that cannot
// be baked is fatal, and that happens before the first frame.
//
// # Logging
//
// cubey produces no log output by default. See [SetLogger].
package cubey
