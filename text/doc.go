// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text draws single-line strings from a baked bitmap font.
//
// The pipeline has three stages:
//
//   - Bake rasterizes codepoints 32 through 127 of a TrueType font into a
//     single-channel coverage atlas and records per-glyph metrics.
//   - FontAtlas.Upload copies the atlas into an R8Unorm texture.
//   - Renderer.Render walks a string with a pen, streams one six-vertex quad
//     per glyph into a reused vertex buffer, and issues one draw per glyph.
//
// # Example usage
//
//	data, err := text.LoadFont("arial.ttf")
//	if err != nil {
//	    return err
//	}
//	atlas, err := text.Bake(data, text.DefaultBakeConfig())
//	if err != nil {
//	    return err
//	}
//	r, err := text.NewRenderer(dev, atlas, text.RendererConfig{ViewportWidth: 900, ViewportHeight: 700})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	r.Render("Hello", 25, 50, 1, text.White)
//
// Bytes outside the baked range are skipped: they produce no quad and do
// not move the pen. There is no kerning and no line breaking.
package text
