// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cubey/backend/recorder"
	"github.com/gogpu/cubey/gpucore"
)

func TestGeometry(t *testing.T) {
	for i, idx := range Indices {
		if idx >= VertexCount {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
	if Indices[0] != 0 || Indices[5] != 0 || Indices[6] != 4 || Indices[35] != 20 {
		t.Errorf("unexpected index pattern %v", Indices[:12])
	}

	// every face is a single color
	for face := range 6 {
		base := face * 4 * floatsPerVertex
		for v := 1; v < 4; v++ {
			for c := 3; c < 6; c++ {
				if Vertices[base+v*floatsPerVertex+c] != Vertices[base+c] {
					t.Errorf("face %d vertex %d has a different color", face, v)
				}
			}
		}
	}
}

func TestRotation_Wrap(t *testing.T) {
	tests := []struct {
		name  string
		start float32
		speed float32
		want  float32
	}{
		{"past 360 resets", 359, 2, 0},
		{"exactly 360 kept", 358, 2, 360},
		{"past -360 resets", -359, -2, 0},
		{"inside range", 10, 1.5, 11.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rotation{X: tt.start, Y: tt.start, SpeedX: tt.speed, SpeedY: tt.speed}
			r.Update()
			if r.X != tt.want || r.Y != tt.want {
				t.Errorf("got (%v, %v), want %v", r.X, r.Y, tt.want)
			}
		})
	}
}

func TestRotation_NudgeThenUpdate(t *testing.T) {
	r := Rotation{X: 359, SpeedX: 0.5}
	r.Nudge(2, -2)
	r.Update()
	if r.X != 0 {
		t.Errorf("X = %v, want 0 after crossing 360", r.X)
	}
	if r.Y != -2 {
		t.Errorf("Y = %v, want -2", r.Y)
	}
}

func TestRandomRotation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		r := RandomRotation(rng)
		for _, s := range []float32{r.SpeedX, r.SpeedY} {
			if s < MinSpeed || s >= MaxSpeed {
				t.Fatalf("speed %v outside [%v, %v)", s, MinSpeed, MaxSpeed)
			}
		}
		if r.X != 0 || r.Y != 0 {
			t.Fatal("initial angles must be zero")
		}
	}

	a := RandomRotation(rand.New(rand.NewPCG(7, 7)))
	b := RandomRotation(rand.New(rand.NewPCG(7, 7)))
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

// absEqual compares with an absolute tolerance; mgl32's relative one is
// exact when either side is zero.
func absEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestRotation_Model(t *testing.T) {
	r := Rotation{X: 90}
	// rotating +Y by 90° about X lands on +Z
	got := r.Model().Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if !got.ApproxFuncEqual(mgl32.Vec4{0, 0, 1, 1}, absEqual) {
		t.Errorf("Model * +Y = %v, want +Z", got)
	}

	if !(Rotation{}).Model().ApproxFuncEqual(mgl32.Ident4(), absEqual) {
		t.Error("zero rotation is not identity")
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	p := Perspective(45, 800.0/600.0, 0.1, 100)

	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	if z := near.Z() / near.W(); z < -1e-4 || z > 1e-4 {
		t.Errorf("near plane depth = %v, want 0", z)
	}
	if z := far.Z() / far.W(); z < 1-1e-4 || z > 1+1e-4 {
		t.Errorf("far plane depth = %v, want 1", z)
	}
}

func TestRenderer_Draw(t *testing.T) {
	dev := recorder.New()
	r, err := NewRenderer(dev, Rotation{X: 30, Y: 45})
	if err != nil {
		t.Fatal(err)
	}
	if r.Program() == gpucore.InvalidID {
		t.Fatal("cube program failed to build")
	}

	view := View(3)
	proj := Perspective(45, 800.0/600.0, 0.1, 100)
	if err := r.Draw(view, proj); err != nil {
		t.Fatal(err)
	}

	draws := dev.Draws()
	if len(draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(draws))
	}
	d := draws[0]
	if d.Count != IndexCount {
		t.Errorf("Count = %d, want %d", d.Count, IndexCount)
	}
	if got := d.Floats(); len(got) != len(Vertices) || got[0] != Vertices[0] || got[len(got)-1] != Vertices[len(Vertices)-1] {
		t.Error("vertex buffer does not hold the cube geometry")
	}

	want := proj.Mul4(view).Mul4(r.Rotation.Model())
	u := d.UniformFloats()
	for i := range 16 {
		if u[i] != want[i] {
			t.Fatalf("mvp[%d] = %v, want %v", i, u[i], want[i])
		}
	}

	r.Close()
	if dev.LiveBuffers() != 0 || dev.LivePrograms() != 0 {
		t.Errorf("resources leaked: %d buffers, %d programs", dev.LiveBuffers(), dev.LivePrograms())
	}
}
