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

// Package testcases provides named bake scenes for tests, benchmarks and
// the example commands.
package testcases

import (
	"image/color"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

// Scene is a complete bake input.
type Scene struct {
	Name       string // lowercase a-z, 0-9 and _ only
	Resolution int    // atlas size in pixels
	Context    *mesh.Context
	Materials  []Material
	Overrides  material.Overrides
}

// Material is a named entry of a scene's material library.
type Material struct {
	Name     string
	ID       uuid.UUID
	Textures material.TextureSet
}

// Library returns the materials of the scene as a material library.
func (s *Scene) Library() material.MapLibrary {
	lib := make(material.MapLibrary, len(s.Materials))
	for _, m := range s.Materials {
		lib[m.ID] = m.Textures
	}
	return lib
}

// ID returns a stable identifier for a part or material name.
func ID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("seehuhn.de/go/atlas/testcases/"+name))
}

// Colors used for flat triangle fills.
var (
	Red   = color.NRGBA{R: 0xff, A: 0xff}
	Green = color.NRGBA{G: 0xff, A: 0xff}
	Blue  = color.NRGBA{B: 0xff, A: 0xff}
	Amber = color.NRGBA{R: 0xff, G: 0xbf, A: 0xff}
)

// pt is a helper to create a vec.Vec2 from u, v coordinates.
func pt(u, v float64) vec.Vec2 {
	return vec.Vec2{X: u, Y: v}
}

// tri builds a triangle of the named part.
func tri(part string, c color.NRGBA, a, b, d vec.Vec2) mesh.Triangle {
	return mesh.Triangle{
		UV:     [3]vec.Vec2{a, b, d},
		Source: mesh.SourceNode{PartID: ID(part), NodeID: ID(part + "/node")},
		Color:  c,
	}
}

// quad builds the two triangles covering the rectangle [u0,u1]×[v0,v1].
func quad(part string, c color.NRGBA, u0, v0, u1, v1 float64) []mesh.Triangle {
	return []mesh.Triangle{
		tri(part, c, pt(u0, v0), pt(u1, v0), pt(u1, v1)),
		tri(part, c, pt(u0, v0), pt(u1, v1), pt(u0, v1)),
	}
}

// node builds a geometry node of the named part with the named material.
func node(part, mat string) mesh.Node {
	return mesh.Node{PartID: ID(part), MaterialID: ID(mat)}
}

// mirror builds a node of part which mirrors the part src.
func mirror(part, mat, src string) mesh.Node {
	n := node(part, mat)
	n.MirrorFromPartID = ID(src)
	return n
}
