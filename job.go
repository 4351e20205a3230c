// seehuhn.de/go/atlas - texture atlas baking for UV-unwrapped meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package atlas

import (
	"image"
	"maps"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

// State is the progress of a [Job].  A bake passes through all states in
// order, without skipping any.
type State int32

// These are the states of a bake.
const (
	Idle State = iota
	Resolving
	Allocating
	PaintingFill
	PaintingBorder
	FreeingNormal
	Packing
	FreeingPacked
	BuildingGuide
	BuildingMesh
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolve"
	case Allocating:
		return "allocate"
	case PaintingFill:
		return "paint fill"
	case PaintingBorder:
		return "paint border"
	case FreeingNormal:
		return "free normal"
	case Packing:
		return "pack"
	case FreeingPacked:
		return "free packed"
	case BuildingGuide:
		return "build guide"
	case BuildingMesh:
		return "build mesh"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Job is a single bake.  A Job can be run once, either synchronously
// using [Job.Run] or in the background using [Job.Start].  The job has
// its own copy of the mesh context and the override table; later changes
// by the caller do not affect it.  There is no way to cancel a job once
// it has started.
type Job struct {
	cfg       Config
	ctx       *mesh.Context
	overrides material.Overrides
	lib       material.Library
	log       *log.Logger

	started atomic.Bool
	state   atomic.Int32

	// trace, if set, is called on every state change.
	trace func(State)
}

// Outcome is the value delivered by [Job.Start].
type Outcome struct {
	Result *Result
	Err    error
}

// NewJob prepares a bake of ctx.  The materials of the mesh parts are
// looked up in lib, after applying the overrides.  The library must not
// change while the job runs.
func NewJob(ctx *mesh.Context, overrides material.Overrides, lib material.Library, cfg Config) *Job {
	return &Job{
		cfg:       cfg,
		ctx:       ctx.Clone(),
		overrides: maps.Clone(overrides),
		lib:       lib,
		log:       cfg.logger(),
	}
}

// State returns the current state of the job.
func (j *Job) State() State {
	return State(j.state.Load())
}

// Run performs the bake on the calling goroutine.
func (j *Job) Run() (*Result, error) {
	if !j.started.CompareAndSwap(false, true) {
		return nil, ErrJobStarted
	}
	return j.bake()
}

// Start performs the bake on a new goroutine.  The returned channel
// delivers exactly one Outcome, once all images are complete, and is
// then closed.
func (j *Job) Start() <-chan Outcome {
	out := make(chan Outcome, 1)
	if !j.started.CompareAndSwap(false, true) {
		out <- Outcome{Err: ErrJobStarted}
		close(out)
		return out
	}
	go func() {
		res, err := j.bake()
		out <- Outcome{Result: res, Err: err}
		close(out)
	}()
	return out
}

func (j *Job) enter(s State) {
	j.state.Store(int32(s))
	if j.trace != nil {
		j.trace(s)
	}
}

func (j *Job) bake() (*Result, error) {
	if j.ctx == nil {
		j.ctx = &mesh.Context{}
	}
	if err := j.cfg.Validate(); err != nil {
		j.log.Error("bake rejected", "err", err)
		return nil, err
	}
	size := j.cfg.Resolution
	tris := j.ctx.Triangles

	var t Timings
	start := time.Now()

	j.enter(Resolving)
	partMaps := material.Resolve(j.overrides, j.lib, j.ctx.Nodes)

	j.enter(Allocating)
	phase := time.Now()
	cs, err := newCanvasSet(size)
	if err != nil {
		j.log.Error("bake failed", "err", err)
		return nil, err
	}
	t.CreateImages = time.Since(phase)

	j.enter(PaintingFill)
	phase = time.Now()
	p := newPainter(size, j.cfg.Margin, partMaps)
	for i := range tris {
		p.paint(&tris[i], cs)
	}
	t.PaintTextures = time.Since(phase)

	j.enter(PaintingBorder)
	phase = time.Now()
	bp := newBorderPainter(size, j.cfg.BorderColor)
	for i := range tris {
		bp.paint(&tris[i], cs.border)
	}
	t.PaintBorders = time.Since(phase)

	j.enter(FreeingNormal)
	if !p.painted[material.Normal] {
		cs.drop(material.Normal)
	}

	j.enter(Packing)
	phase = time.Now()
	hasMetal := p.painted[material.Metalness]
	hasRough := p.painted[material.Roughness]
	hasAO := p.painted[material.AmbientOcclusion]
	packed := Pack(
		painted(cs, material.Metalness, hasMetal),
		painted(cs, material.Roughness, hasRough),
		painted(cs, material.AmbientOcclusion, hasAO),
	)

	j.enter(FreeingPacked)
	cs.drop(material.Metalness)
	cs.drop(material.Roughness)
	cs.drop(material.AmbientOcclusion)
	if packed == nil {
		hasMetal, hasRough, hasAO = false, false, false
	}
	t.Merge = time.Since(phase)

	j.enter(BuildingGuide)
	phase = time.Now()
	colorImg := cs.layers[material.BaseColor]
	final := cloneNRGBA(colorImg)
	guide := cloneNRGBA(final)
	Multiply(guide, cs.border)

	j.enter(BuildingMesh)
	m := mesh.New(j.ctx, mesh.Maps{
		Texture:             final,
		Normal:              cs.layers[material.Normal],
		Packed:              packed,
		HasMetalness:        hasMetal,
		HasRoughness:        hasRough,
		HasAmbientOcclusion: hasAO,
	})
	t.CreateResult = time.Since(phase)
	t.Total = time.Since(start)

	res := &Result{
		HasMetalness:        hasMetal,
		HasRoughness:        hasRough,
		HasAmbientOcclusion: hasAO,
		Timings:             t,
	}
	res.color.put(colorImg)
	res.final.put(final)
	res.guide.put(guide)
	res.border.put(cs.border)
	res.normal.put(cs.layers[material.Normal])
	res.packed.put(packed)
	res.mesh.put(m)
	res.context.put(j.ctx)

	j.log.Debug("texture generated",
		"size", size,
		"triangles", len(tris),
		"total", t.Total,
		"createImages", t.CreateImages,
		"paintTextures", t.PaintTextures,
		"paintBorders", t.PaintBorders,
		"merge", t.Merge,
		"createResult", t.CreateResult)

	j.enter(Completed)
	return res, nil
}

// painted returns the canvas of ch if any triangle painted into it.
func painted(cs *canvasSet, ch material.Channel, ok bool) *image.NRGBA {
	if !ok {
		return nil
	}
	return cs.layers[ch]
}
