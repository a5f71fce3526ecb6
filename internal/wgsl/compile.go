// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgsl compiles and inspects WGSL stage sources with naga.
package wgsl

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/naga"
)

// ErrEmptySource is returned for blank shader sources.
var ErrEmptySource = errors.New("shader source is empty")

var (
	vertexSignature   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)\s*\([^)]*\)\s*->\s*(\w+)`)
	fragmentSignature = regexp.MustCompile(`@fragment\s+fn\s+(\w+)\s*\(\s*\w+\s*:\s*(\w+)`)
	locationAttr      = regexp.MustCompile(`@location\s*\(\s*(\d+)\s*\)`)
	structDecl        = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	entryDecls = map[gpucore.StageKind]*regexp.Regexp{
		gpucore.StageVertex:   entryDecl(gpucore.StageVertex),
		gpucore.StageFragment: entryDecl(gpucore.StageFragment),
	}
)

func entryDecl(kind gpucore.StageKind) *regexp.Regexp {
	return regexp.MustCompile(`@` + kind.String() + `\s+fn\s+` + kind.EntryPoint() + `\b`)
}

// Module is one compiled shader stage.
type Module struct {
	Kind       gpucore.StageKind
	Source     string
	EntryPoint string
	SPIRV      []uint32

	// Locations are the user-defined inter-stage @location slots: outputs
	// of a vertex stage, inputs of a fragment stage. Sorted ascending.
	Locations []uint32
}

// Compile validates source with naga and checks that it declares the entry
// point of the requested stage. The returned error text is the compiler log.
func Compile(source string, kind gpucore.StageKind) (*Module, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	entry := kind.EntryPoint()
	decl, known := entryDecls[kind]
	if entry == "" || !known {
		return nil, fmt.Errorf("unknown shader stage %d", kind)
	}

	spirv, err := ToSPIRV(source)
	if err != nil {
		return nil, err
	}

	if !decl.MatchString(source) {
		return nil, fmt.Errorf("no @%s entry point named %q", kind, entry)
	}

	return &Module{
		Kind:       kind,
		Source:     source,
		EntryPoint: entry,
		SPIRV:      spirv,
		Locations:  stageLocations(source, kind),
	}, nil
}

// ToSPIRV compiles WGSL source to SPIR-V words.
func ToSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// CheckInterface reports an error when the fragment stage reads a location
// the vertex stage does not write.
func CheckInterface(vertex, fragment *Module) error {
	if vertex.Kind != gpucore.StageVertex || fragment.Kind != gpucore.StageFragment {
		return fmt.Errorf("%w: got %s + %s, want vertex + fragment",
			gpucore.ErrStageMismatch, vertex.Kind, fragment.Kind)
	}
	for _, loc := range fragment.Locations {
		if !slices.Contains(vertex.Locations, loc) {
			return fmt.Errorf("fragment input @location(%d) is not written by the vertex stage", loc)
		}
	}
	return nil
}

// stageLocations returns the @location slots of the entry point's
// inter-stage struct. Stages that do not use a struct report none.
func stageLocations(source string, kind gpucore.StageKind) []uint32 {
	var sig *regexp.Regexp
	switch kind {
	case gpucore.StageVertex:
		sig = vertexSignature
	case gpucore.StageFragment:
		sig = fragmentSignature
	default:
		return nil
	}

	var structName string
	for _, m := range sig.FindAllStringSubmatch(source, -1) {
		if m[1] == kind.EntryPoint() {
			structName = m[2]
			break
		}
	}
	if structName == "" {
		return nil
	}

	var body string
	for _, m := range structDecl.FindAllStringSubmatch(source, -1) {
		if m[1] == structName {
			body = m[2]
			break
		}
	}
	if body == "" {
		return nil
	}

	var locs []uint32
	for _, m := range locationAttr.FindAllStringSubmatch(body, -1) {
		n, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		locs = append(locs, uint32(n))
	}
	slices.Sort(locs)
	return slices.Compact(locs)
}
