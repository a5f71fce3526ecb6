// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"github.com/gogpu/cubey/gpucore"
)

// ProgramSource is everything needed to build one program.
type ProgramSource struct {
	Vertex   string
	Fragment string
	Desc     gpucore.ProgramDesc
}

// CompileStage compiles one stage. On failure it returns InvalidID and a
// *CompileError whose Log holds the compiler output.
func CompileStage(dev gpucore.Device, source string, kind gpucore.StageKind) (gpucore.StageID, error) {
	if dev == nil {
		return gpucore.InvalidID, ErrNilDevice
	}
	id, err := dev.CompileStage(source, kind)
	if err != nil {
		cerr := &CompileError{Stage: kind, Log: err.Error()}
		slogger().Warn("shader: stage compilation failed",
			"stage", kind.String(),
			"log", cerr.Log)
		return gpucore.InvalidID, cerr
	}
	return id, nil
}

// Link links a compiled vertex and fragment stage. On failure it returns
// InvalidID and a *LinkError. The stages are not released.
func Link(dev gpucore.Device, vs, fs gpucore.StageID, desc *gpucore.ProgramDesc) (gpucore.ProgramID, error) {
	if dev == nil {
		return gpucore.InvalidID, ErrNilDevice
	}
	label := ""
	if desc != nil {
		label = desc.Label
	}
	id, err := dev.LinkProgram(vs, fs, desc)
	if err != nil {
		lerr := &LinkError{Label: label, Log: err.Error()}
		slogger().Warn("shader: program link failed",
			"label", label,
			"log", lerr.Log)
		return gpucore.InvalidID, lerr
	}
	slogger().Debug("shader: program linked", "label", label, "program", uint64(id))
	return id, nil
}

// Build compiles both stages of src, links them, and releases every stage
// handle it acquired. The returned program is InvalidID whenever err is
// non-nil.
func Build(dev gpucore.Device, src ProgramSource) (gpucore.ProgramID, error) {
	vs, err := CompileStage(dev, src.Vertex, gpucore.StageVertex)
	if err != nil {
		return gpucore.InvalidID, err
	}
	defer dev.ReleaseStage(vs)

	fs, err := CompileStage(dev, src.Fragment, gpucore.StageFragment)
	if err != nil {
		return gpucore.InvalidID, err
	}
	defer dev.ReleaseStage(fs)

	desc := src.Desc
	return Link(dev, vs, fs, &desc)
}
