// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// labelFormat is the overlay text; it takes the X and Y angles in degrees.
const labelFormat = "Arrow keys control the rotation (%.1f, %.1f)"

// labelPrinter formats overlay labels. The overlay font holds ASCII only,
// so the printer is pinned to English.
var labelPrinter = message.NewPrinter(language.English)

// RotationLabel returns the overlay text for the given angles.
func RotationLabel(x, y float32) string {
	return labelPrinter.Sprintf(labelFormat, x, y)
}
