// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/cubey/cube"
	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/shader"
)

// newNoopDevice opens a Device on the noop HAL backend.
func newNoopDevice(t *testing.T) *Device {
	t.Helper()

	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapter")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	d, err := New(open.Device, open.Queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
		open.Device.Destroy()
		instance.Destroy()
	})
	return d
}

func buildProgram(t *testing.T, d *Device, src shader.ProgramSource) gpucore.ProgramID {
	t.Helper()
	id, err := shader.Build(d, src)
	if err != nil {
		t.Fatalf("build %s: %v", src.Desc.Label, err)
	}
	return id
}

func allocate(t *testing.T, d *Device, size int, usage gpucore.BufferUsage) gpucore.BufferID {
	t.Helper()
	id, err := d.AllocateBuffer(size, usage)
	if err != nil {
		t.Fatalf("AllocateBuffer(%d): %v", size, err)
	}
	return id
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, nil, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("New(nil) error = %v, want ErrNilHALDevice", err)
	}
}

func TestNewDefaultFormat(t *testing.T) {
	instance, _ := noop.API{}.CreateInstance(nil)
	defer instance.Destroy()
	open, err := instance.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(open.Device, open.Queue, gputypes.TextureFormatUndefined)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if d.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", d.Format())
	}
}

func TestBuildEmbeddedPrograms(t *testing.T) {
	d := newNoopDevice(t)

	cubeID := buildProgram(t, d, shader.CubeProgram())
	textID := buildProgram(t, d, shader.TextProgram())
	if cubeID == gpucore.InvalidID || textID == gpucore.InvalidID || cubeID == textID {
		t.Fatalf("program ids = %d, %d", cubeID, textID)
	}
	if n := len(d.stages); n != 0 {
		t.Errorf("live stages after Build = %d, want 0", n)
	}
	if d.sampler == nil {
		t.Error("textured program did not create the atlas sampler")
	}
}

func TestCompileStageError(t *testing.T) {
	d := newNoopDevice(t)

	id, err := d.CompileStage("fn broken( {", gpucore.StageVertex)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if id != gpucore.InvalidID {
		t.Errorf("id = %d, want InvalidID", id)
	}
}

func TestLinkSwappedStages(t *testing.T) {
	d := newNoopDevice(t)
	src := shader.CubeProgram()

	vs, err := d.CompileStage(src.Vertex, gpucore.StageVertex)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := d.CompileStage(src.Fragment, gpucore.StageFragment)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.LinkProgram(fs, vs, &src.Desc); !errors.Is(err, gpucore.ErrStageMismatch) {
		t.Errorf("LinkProgram(fs, vs) error = %v, want ErrStageMismatch", err)
	}
	if _, err := d.LinkProgram(vs, 999, &src.Desc); !errors.Is(err, gpucore.ErrUnknownResource) {
		t.Errorf("LinkProgram(vs, 999) error = %v, want ErrUnknownResource", err)
	}
}

func TestFrameArenaLayout(t *testing.T) {
	d := newNoopDevice(t)
	cubeID := buildProgram(t, d, shader.CubeProgram())
	textID := buildProgram(t, d, shader.TextProgram())

	tex, err := d.UploadTexture(4, 4, gpucore.TextureFormatR8Unorm, make([]byte, 16))
	if err != nil {
		t.Fatalf("UploadTexture: %v", err)
	}

	cubeVerts := allocate(t, d, 3*shader.CubeVertexStride, gpucore.BufferUsageVertex)
	cubeIdx := allocate(t, d, 3*4, gpucore.BufferUsageIndex)
	textVerts := allocate(t, d, 6*shader.TextVertexStride, gpucore.BufferUsageStream)
	textIdx := allocate(t, d, 6*4, gpucore.BufferUsageIndex)

	if err := d.WriteUniforms(cubeID, make([]byte, shader.CubeUniformSize)); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteUniforms(textID, make([]byte, shader.TextUniformSize)); err != nil {
		t.Fatal(err)
	}

	d.SetDepthTest(true)
	if err := d.DrawIndexed(&gpucore.DrawCommand{Program: cubeID, Vertices: cubeVerts, Indices: cubeIdx, Count: 3}); err != nil {
		t.Fatalf("cube draw: %v", err)
	}
	d.SetDepthTest(false)
	for i := 0; i < 2; i++ {
		if err := d.StreamBufferData(textVerts, make([]byte, 6*shader.TextVertexStride)); err != nil {
			t.Fatal(err)
		}
		err := d.DrawIndexed(&gpucore.DrawCommand{
			Program: textID, Vertices: textVerts, Indices: textIdx, Count: 6, Texture: tex,
		})
		if err != nil {
			t.Fatalf("text draw %d: %v", i, err)
		}
	}

	if got := d.frame.draws[0].depthTest; !got {
		t.Error("cube draw recorded without depth test")
	}
	if got := d.frame.draws[2].depthTest; got {
		t.Error("text draw recorded with depth test")
	}
	for i, dr := range d.frame.draws {
		if dr.uniformOffset%uniformAlignment != 0 {
			t.Errorf("draw %d uniform offset %d not aligned", i, dr.uniformOffset)
		}
	}

	if err := d.EndFrame(&noop.Resource{}, 800, 600); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}

	want := FrameStats{
		Draws:        3,
		VertexBytes:  3*shader.CubeVertexStride + 2*6*shader.TextVertexStride,
		IndexBytes:   3*4 + 2*6*4,
		UniformBytes: 2*uniformAlignment + shader.TextUniformSize,
		Submission:   1,
	}
	if got := d.LastFrame(); got != want {
		t.Errorf("LastFrame() = %+v, want %+v", got, want)
	}
	if n := len(d.frame.draws); n != 0 {
		t.Errorf("arena holds %d draws after EndFrame", n)
	}
}

func TestEndFrameReclaims(t *testing.T) {
	d := newNoopDevice(t)

	view := &noop.Resource{}
	if err := d.EndFrame(view, 64, 64); err != nil {
		t.Fatal(err)
	}
	if n := d.PendingReleases(); n != 1 {
		t.Fatalf("pending after first frame = %d, want 1", n)
	}

	// Resize retires the old depth target along with the first frame.
	if err := d.EndFrame(view, 32, 32); err != nil {
		t.Fatal(err)
	}
	if d.depth.width != 32 || d.depth.height != 32 {
		t.Errorf("depth target = %dx%d, want 32x32", d.depth.width, d.depth.height)
	}
	if got := d.LastFrame(); got.Draws != 0 || got.Submission != 2 {
		t.Errorf("LastFrame() = %+v", got)
	}

	if err := d.EndFrame(view, 32, 32); err != nil {
		t.Fatal(err)
	}
	if n := d.PendingReleases(); n != 1 {
		t.Errorf("pending after third frame = %d, want 1", n)
	}
}

func TestDestroyDeferred(t *testing.T) {
	d := newNoopDevice(t)
	prog := buildProgram(t, d, shader.CubeProgram())
	tex, err := d.UploadTexture(2, 2, gpucore.TextureFormatRGBA8Unorm, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	d.DestroyProgram(prog)
	d.DestroyTexture(tex)
	d.DestroyProgram(prog)
	if n := d.PendingReleases(); n != 2 {
		t.Fatalf("pending = %d, want 2", n)
	}
	if err := d.WriteUniforms(prog, make([]byte, shader.CubeUniformSize)); !errors.Is(err, gpucore.ErrUnknownResource) {
		t.Errorf("WriteUniforms after destroy error = %v", err)
	}

	view := &noop.Resource{}
	for i := 0; i < 2; i++ {
		if err := d.EndFrame(view, 16, 16); err != nil {
			t.Fatal(err)
		}
	}
	if n := d.PendingReleases(); n != 1 {
		t.Errorf("pending after two frames = %d, want 1", n)
	}
}

func TestDrawIndexedErrors(t *testing.T) {
	d := newNoopDevice(t)
	cubeID := buildProgram(t, d, shader.CubeProgram())
	textID := buildProgram(t, d, shader.TextProgram())
	verts := allocate(t, d, 96, gpucore.BufferUsageVertex)
	idx := allocate(t, d, 24, gpucore.BufferUsageIndex)

	tests := []struct {
		name string
		cmd  gpucore.DrawCommand
		want error
	}{
		{"unknown program", gpucore.DrawCommand{Program: 999, Vertices: verts, Indices: idx, Count: 6}, gpucore.ErrUnknownResource},
		{"unknown vertices", gpucore.DrawCommand{Program: cubeID, Vertices: 999, Indices: idx, Count: 6}, gpucore.ErrUnknownResource},
		{"unknown indices", gpucore.DrawCommand{Program: cubeID, Vertices: verts, Indices: 999, Count: 6}, gpucore.ErrUnknownResource},
		{"count overrun", gpucore.DrawCommand{Program: cubeID, Vertices: verts, Indices: idx, Count: 7}, gpucore.ErrSizeMismatch},
		{"missing texture", gpucore.DrawCommand{Program: textID, Vertices: verts, Indices: idx, Count: 6}, gpucore.ErrUnknownResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.DrawIndexed(&tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("DrawIndexed() error = %v, want %v", err, tt.want)
			}
		})
	}
	if n := len(d.frame.draws); n != 0 {
		t.Errorf("failed draws recorded %d entries", n)
	}
}

func TestResourceErrors(t *testing.T) {
	d := newNoopDevice(t)
	prog := buildProgram(t, d, shader.CubeProgram())
	buf := allocate(t, d, 8, gpucore.BufferUsageStream)

	if _, err := d.UploadTexture(4, 4, gpucore.TextureFormatR8Unorm, make([]byte, 15)); !errors.Is(err, gpucore.ErrSizeMismatch) {
		t.Errorf("short texture error = %v", err)
	}
	if _, err := d.UploadTexture(0, 4, gpucore.TextureFormatR8Unorm, nil); !errors.Is(err, gpucore.ErrInvalidSize) {
		t.Errorf("zero-width texture error = %v", err)
	}
	if _, err := d.AllocateBuffer(0, gpucore.BufferUsageVertex); !errors.Is(err, gpucore.ErrInvalidSize) {
		t.Errorf("zero buffer error = %v", err)
	}
	if err := d.StreamBufferData(buf, make([]byte, 9)); !errors.Is(err, gpucore.ErrSizeMismatch) {
		t.Errorf("oversized stream error = %v", err)
	}
	if err := d.WriteUniforms(prog, make([]byte, 4)); !errors.Is(err, gpucore.ErrSizeMismatch) {
		t.Errorf("short uniforms error = %v", err)
	}
	if err := d.EndFrame(nil, 10, 10); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil target error = %v", err)
	}
	if err := d.EndFrame(&noop.Resource{}, 0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v", err)
	}
}

func TestCubeRendererOnNoop(t *testing.T) {
	d := newNoopDevice(t)

	r, err := cube.NewRenderer(d, cube.Rotation{})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	defer r.Close()

	d.SetDepthTest(true)
	proj := cube.Perspective(45, 800.0/600.0, 0.1, 100)
	if err := r.Draw(cube.View(3), proj); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := d.EndFrame(&noop.Resource{}, 800, 600); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}

	got := d.LastFrame()
	if got.Draws != 1 || got.IndexBytes != cube.IndexCount*4 {
		t.Errorf("LastFrame() = %+v", got)
	}
	if got.VertexBytes != cube.VertexCount*shader.CubeVertexStride {
		t.Errorf("VertexBytes = %d, want %d", got.VertexBytes, cube.VertexCount*shader.CubeVertexStride)
	}
}

func TestCloseIdempotent(t *testing.T) {
	d := newNoopDevice(t)
	buildProgram(t, d, shader.TextProgram())
	if _, err := d.UploadTexture(2, 2, gpucore.TextureFormatR8Unorm, make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if err := d.EndFrame(&noop.Resource{}, 8, 8); err != nil {
		t.Fatal(err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if d.PendingReleases() != 0 || len(d.programs) != 0 || len(d.textures) != 0 {
		t.Error("Close left resources behind")
	}
	if _, err := d.AllocateBuffer(4, gpucore.BufferUsageVertex); !errors.Is(err, ErrClosed) {
		t.Errorf("AllocateBuffer after Close error = %v", err)
	}
	if err := d.EndFrame(&noop.Resource{}, 8, 8); !errors.Is(err, ErrClosed) {
		t.Errorf("EndFrame after Close error = %v", err)
	}
}

func TestPadRows(t *testing.T) {
	px := []byte{1, 2, 3, 4, 5, 6}
	out, stride := padRows(px, 3, 2)
	if stride != rowAlignment {
		t.Fatalf("stride = %d, want %d", stride, rowAlignment)
	}
	if len(out) != 2*rowAlignment {
		t.Fatalf("len = %d", len(out))
	}
	if out[0] != 1 || out[2] != 3 || out[rowAlignment] != 4 || out[rowAlignment+2] != 6 || out[3] != 0 {
		t.Errorf("rows not copied to padded stride: %v", out[:4])
	}

	aligned := make([]byte, 2*rowAlignment)
	if got, s := padRows(aligned, rowAlignment, 2); s != rowAlignment || &got[0] != &aligned[0] {
		t.Error("aligned rows were copied")
	}
}
