// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/cubey/gpucore"
)

const testVertex = `
struct VertexInput {
    @location(0) position: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(2) tint: vec4<f32>,
}

@vertex
fn vs_main(input: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(input.position, 0.0, 1.0);
    out.uv = input.position;
    out.tint = vec4<f32>(1.0, 1.0, 1.0, 1.0);
    return out;
}
`

const testFragment = `
struct FragmentInput {
    @location(2) tint: vec4<f32>,
}

@fragment
fn fs_main(input: FragmentInput) -> @location(0) vec4<f32> {
    return input.tint;
}
`

const testFragmentUnmatched = `
struct FragmentInput {
    @location(5) tint: vec4<f32>,
}

@fragment
fn fs_main(input: FragmentInput) -> @location(0) vec4<f32> {
    return input.tint;
}
`

func TestCompileVertex(t *testing.T) {
	mod, err := Compile(testVertex, gpucore.StageVertex)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if mod.EntryPoint != "vs_main" {
		t.Errorf("EntryPoint = %q, want vs_main", mod.EntryPoint)
	}
	if len(mod.SPIRV) == 0 || mod.SPIRV[0] != 0x07230203 {
		t.Errorf("SPIR-V missing magic number")
	}
	if want := []uint32{0, 2}; !slices.Equal(mod.Locations, want) {
		t.Errorf("Locations = %v, want %v", mod.Locations, want)
	}
}

func TestCompileFragment(t *testing.T) {
	mod, err := Compile(testFragment, gpucore.StageFragment)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if want := []uint32{2}; !slices.Equal(mod.Locations, want) {
		t.Errorf("Locations = %v, want %v", mod.Locations, want)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   gpucore.StageKind
	}{
		{"empty", "   \n", gpucore.StageVertex},
		{"syntax", "@vertex fn vs_main( -> {", gpucore.StageVertex},
		{"wrong stage", testFragment, gpucore.StageVertex},
		{"unknown kind", testVertex, gpucore.StageKind(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := Compile(tt.source, tt.kind)
			if err == nil {
				t.Fatal("expected error")
			}
			if mod != nil {
				t.Error("module should be nil on error")
			}
			if err.Error() == "" {
				t.Error("error carries no diagnostics")
			}
		})
	}
}

func TestCompileEmptySentinel(t *testing.T) {
	_, err := Compile("", gpucore.StageFragment)
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestCheckInterface(t *testing.T) {
	vs, err := Compile(testVertex, gpucore.StageVertex)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := Compile(testFragment, gpucore.StageFragment)
	if err != nil {
		t.Fatal(err)
	}
	bad, err := Compile(testFragmentUnmatched, gpucore.StageFragment)
	if err != nil {
		t.Fatal(err)
	}

	if err := CheckInterface(vs, fs); err != nil {
		t.Errorf("matching stages: %v", err)
	}
	if err := CheckInterface(vs, bad); err == nil {
		t.Error("expected error for unmatched location")
	}
	if err := CheckInterface(fs, vs); !errors.Is(err, gpucore.ErrStageMismatch) {
		t.Errorf("swapped stages: err = %v, want ErrStageMismatch", err)
	}
}

func TestStageLocationsPicksEntryStruct(t *testing.T) {
	const src = `
struct VertexOutputExtra {
    @location(7) unused: f32,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(1) color: vec3<f32>,
}

struct VertexInput {
    @location(0) p: vec3<f32>,
}

@vertex
fn vs_main(input: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(input.p, 1.0);
    out.color = input.p;
    return out;
}
`
	for range 3 {
		if got, want := stageLocations(src, gpucore.StageVertex), []uint32{1}; !slices.Equal(got, want) {
			t.Fatalf("stageLocations = %v, want %v", got, want)
		}
	}
	if got := stageLocations(src, gpucore.StageKind(9)); got != nil {
		t.Errorf("unknown kind: stageLocations = %v, want nil", got)
	}
}

func BenchmarkStageLocations(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		stageLocations(testVertex, gpucore.StageVertex)
	}
}
