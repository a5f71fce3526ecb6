// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader builds GPU programs from WGSL stage sources.
//
// A program is built in three steps: each stage is compiled, the two stages
// are linked, and the stage handles are released. [Build] performs all three
// and always releases the stages it acquired, whether linking succeeds or not.
//
// Failures never abort the caller. A failed build is logged with its full
// diagnostic at warn level and yields [gpucore.InvalidID]; a pipeline holding
// a zero program simply draws nothing.
//
// The programs used by cubey are embedded:
//
//	id, err := shader.Build(dev, shader.CubeProgram())
//	if err != nil {
//	    log.Print(shader.Diagnostics(err))
//	}
package shader
