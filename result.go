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
	"time"

	"seehuhn.de/go/atlas/mesh"
)

// Result holds the output of a bake.  Every image, the mesh and the
// context can be taken once.  A second take of the same output returns
// (nil, false), which callers must treat like an output that was never
// produced.
type Result struct {
	color  Owned[image.NRGBA]
	final  Owned[image.NRGBA]
	guide  Owned[image.NRGBA]
	border Owned[image.NRGBA]
	normal Owned[image.NRGBA]
	packed Owned[image.NRGBA]

	mesh    Owned[mesh.Mesh]
	context Owned[mesh.Context]

	// These flags tell which components of the packed image carry
	// data.  They are all false if there is no packed image.
	HasMetalness        bool
	HasRoughness        bool
	HasAmbientOcclusion bool

	// Timings records how long the phases of the bake took.
	Timings Timings
}

// Timings holds the duration of the bake phases.  The values are for
// diagnostics only.
type Timings struct {
	CreateImages  time.Duration
	PaintTextures time.Duration
	PaintBorders  time.Duration
	Merge         time.Duration
	CreateResult  time.Duration
	Total         time.Duration
}

// TakeColor returns the base color atlas.
func (r *Result) TakeColor() (*image.NRGBA, bool) { return r.color.Take() }

// TakeFinal returns the copy of the base color atlas intended for
// display.
func (r *Result) TakeFinal() (*image.NRGBA, bool) { return r.final.Take() }

// TakeGuide returns the final image with the triangle edges multiplied
// on top.
func (r *Result) TakeGuide() (*image.NRGBA, bool) { return r.guide.Take() }

// TakeBorder returns the image with the triangle edges on a transparent
// background.
func (r *Result) TakeBorder() (*image.NRGBA, bool) { return r.border.Take() }

// TakeNormal returns the normal map.  It reports false if no part had a
// normal map.
func (r *Result) TakeNormal() (*image.NRGBA, bool) { return r.normal.Take() }

// TakePacked returns the packed metalness/roughness/ambient occlusion
// image.  It reports false if no part had any of these maps.
func (r *Result) TakePacked() (*image.NRGBA, bool) { return r.packed.Take() }

// TakeMesh returns the mesh with copies of the baked images attached.
func (r *Result) TakeMesh() (*mesh.Mesh, bool) { return r.mesh.Take() }

// TakeContext returns the mesh context the bake was performed on.
func (r *Result) TakeContext() (*mesh.Context, bool) { return r.context.Take() }
