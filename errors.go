// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import "errors"

// ErrNilDevice is returned when a scene is created without a device.
var ErrNilDevice = errors.New("cubey: nil device")

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "cubey: invalid config." + e.Field + ": " + e.Reason
}
