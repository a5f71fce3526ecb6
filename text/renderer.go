// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/shader"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// ViewportWidth and ViewportHeight size the initial pixel-space
	// projection (origin top-left, y down). Zero values leave the identity
	// projection until SetProjection or SetViewport is called.
	ViewportWidth  int
	ViewportHeight int
}

// Renderer draws strings from one FontAtlas.
//
// Each in-range byte is turned into one quad; the quad overwrites the
// renderer's single stream buffer and is drawn immediately, so a string of
// n baked characters costs n buffer writes and n draws.
type Renderer struct {
	dev   gpucore.Device
	atlas *FontAtlas

	program  gpucore.ProgramID
	vertices gpucore.BufferID
	indices  gpucore.BufferID

	projection  mgl32.Mat4
	ownsTexture bool

	quadBuf    [QuadBytes]byte
	uniformBuf [shader.TextUniformSize]byte
}

// NewRenderer builds the text program, uploads the atlas if it has no
// texture yet, and allocates the stream buffer.
//
// A program that fails to build is logged and leaves the renderer without
// a program: Render then draws nothing but still advances the pen.
func NewRenderer(dev gpucore.Device, atlas *FontAtlas, cfg RendererConfig) (*Renderer, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if atlas == nil {
		return nil, ErrNilAtlas
	}

	r := &Renderer{
		dev:        dev,
		atlas:      atlas,
		projection: mgl32.Ident4(),
	}
	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		r.SetViewport(cfg.ViewportWidth, cfg.ViewportHeight)
	}

	// build failures are already logged by shader.Build
	r.program, _ = shader.Build(dev, shader.TextProgram())

	if atlas.Texture() == gpucore.InvalidID {
		if err := atlas.Upload(dev); err != nil {
			r.Close()
			return nil, err
		}
		r.ownsTexture = true
	}

	var err error
	r.vertices, err = dev.AllocateBuffer(QuadBytes, gpucore.BufferUsageVertex|gpucore.BufferUsageStream)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("text: allocate stream buffer: %w", err)
	}

	r.indices, err = dev.AllocateBuffer(QuadVertices*4, gpucore.BufferUsageIndex)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("text: allocate index buffer: %w", err)
	}
	var idx [QuadVertices * 4]byte
	for i := range QuadVertices {
		binary.LittleEndian.PutUint32(idx[i*4:], uint32(i))
	}
	if err := dev.StreamBufferData(r.indices, idx[:]); err != nil {
		r.Close()
		return nil, fmt.Errorf("text: upload indices: %w", err)
	}

	slogger().Debug("text: renderer ready",
		"program", uint64(r.program),
		"texture", uint64(atlas.Texture()))
	return r, nil
}

// Program returns the text program, InvalidID if it failed to build.
func (r *Renderer) Program() gpucore.ProgramID {
	return r.program
}

// StreamBuffer returns the vertex buffer every glyph quad is written to.
func (r *Renderer) StreamBuffer() gpucore.BufferID {
	return r.vertices
}

// Atlas returns the atlas the renderer draws from.
func (r *Renderer) Atlas() *FontAtlas {
	return r.atlas
}

// SetProjection sets the matrix applied to pixel-space quad positions.
func (r *Renderer) SetProjection(m mgl32.Mat4) {
	r.projection = m
}

// SetViewport sets an orthographic projection mapping (0,0) to the
// top-left and (width,height) to the bottom-right of the framebuffer.
func (r *Renderer) SetViewport(width, height int) {
	r.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Render draws s with its first baseline point at (x, y) and returns the
// final pen position. Bytes outside the atlas range are skipped and do not
// move the pen. On a device error Render stops and returns the pen reached
// so far.
func (r *Renderer) Render(s string, x, y, scale float32, color Color) (Pen, error) {
	pen := Pen{X: x, Y: y}
	if r.program == gpucore.InvalidID {
		pen.X += r.atlas.MeasureString(s, scale)
		return pen, nil
	}

	uniformsWritten := false
	for i := 0; i < len(s); i++ {
		q, ok := r.atlas.GlyphQuad(&pen, s[i], scale)
		if !ok {
			continue
		}

		if !uniformsWritten {
			r.putUniforms(color)
			if err := r.dev.WriteUniforms(r.program, r.uniformBuf[:]); err != nil {
				return pen, fmt.Errorf("text: write uniforms: %w", err)
			}
			uniformsWritten = true
		}

		q.putBytes(r.quadBuf[:])
		if err := r.dev.StreamBufferData(r.vertices, r.quadBuf[:]); err != nil {
			return pen, fmt.Errorf("text: stream glyph %q: %w", s[i], err)
		}
		err := r.dev.DrawIndexed(&gpucore.DrawCommand{
			Program:  r.program,
			Vertices: r.vertices,
			Indices:  r.indices,
			Count:    QuadVertices,
			Texture:  r.atlas.Texture(),
		})
		if err != nil {
			return pen, fmt.Errorf("text: draw glyph %q: %w", s[i], err)
		}
	}
	return pen, nil
}

// putUniforms packs projection then color, matching TextUniforms in the
// text shaders.
func (r *Renderer) putUniforms(c Color) {
	buf := r.uniformBuf[:]
	off := 0
	for _, v := range r.projection {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
}

// Close releases the buffers, the program, and the atlas texture if this
// renderer uploaded it. Close is idempotent.
func (r *Renderer) Close() {
	if r.vertices != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.vertices)
		r.vertices = gpucore.InvalidID
	}
	if r.indices != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.indices)
		r.indices = gpucore.InvalidID
	}
	if r.program != gpucore.InvalidID {
		r.dev.DestroyProgram(r.program)
		r.program = gpucore.InvalidID
	}
	if r.ownsTexture {
		r.atlas.Release(r.dev)
		r.ownsTexture = false
	}
}
