// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Random speed bounds in degrees per frame.
const (
	MinSpeed = 0.1
	MaxSpeed = 2.0
)

// rotationLimit is the magnitude past which an angle resets to zero.
const rotationLimit = 360

// Rotation is the cube orientation in degrees and its per-frame spin.
type Rotation struct {
	X, Y           float32
	SpeedX, SpeedY float32
}

// RandomRotation returns a zero orientation with speeds drawn uniformly
// from [MinSpeed, MaxSpeed).
func RandomRotation(rng *rand.Rand) Rotation {
	return Rotation{
		SpeedX: randomSpeed(rng),
		SpeedY: randomSpeed(rng),
	}
}

func randomSpeed(rng *rand.Rand) float32 {
	s := float32(MinSpeed + rng.Float64()*(MaxSpeed-MinSpeed))
	if s >= MaxSpeed {
		s = math.Nextafter32(MaxSpeed, 0)
	}
	return s
}

// Nudge adds keyboard deltas to the angles.
func (r *Rotation) Nudge(dx, dy float32) {
	r.X += dx
	r.Y += dy
}

// Update advances both angles by their speeds. An angle that ends above
// 360 or below -360 is reset to exactly 0.
func (r *Rotation) Update() {
	r.X = wrapAngle(r.X + r.SpeedX)
	r.Y = wrapAngle(r.Y + r.SpeedY)
}

func wrapAngle(a float32) float32 {
	if a > rotationLimit || a < -rotationLimit {
		return 0
	}
	return a
}

// Model returns the model matrix: rotation about X, then about Y.
func (r Rotation) Model() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(r.X))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(r.Y))
	return rx.Mul4(ry)
}
