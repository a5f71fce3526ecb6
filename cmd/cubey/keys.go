// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/cubey"
)

// keyboard tracks which arrow keys are held. Key callbacks and the draw
// callback may run on different goroutines.
type keyboard struct {
	mu   sync.Mutex
	held cubey.Input
}

// set records a press (down=true) or release of key. It reports whether
// key is one of the arrow keys.
func (k *keyboard) set(key gpucontext.Key, down bool) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch key {
	case gpucontext.KeyUp:
		k.held.Up = down
	case gpucontext.KeyDown:
		k.held.Down = down
	case gpucontext.KeyLeft:
		k.held.Left = down
	case gpucontext.KeyRight:
		k.held.Right = down
	default:
		return false
	}
	return true
}

// snapshot returns the keys held right now.
func (k *keyboard) snapshot() cubey.Input {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held
}
