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

package testcases

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

// largeScenes contain scenes at production resolution, where most
// dilated triangles exceed the small path threshold of the rasterizer.
var largeScenes = []Scene{
	gridScene("grid_16", 1024, 16),
	{
		Name:       "single_large",
		Resolution: 1024,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("body", Red, pt(0.02, 0.02), pt(0.98, 0.02), pt(0.5, 0.98)),
			},
			Nodes: []mesh.Node{node("body", "body_paint")},
		},
		Materials: []Material{
			{Name: "body_paint", ID: ID("body_paint"), Textures: material.TextureSet{
				material.BaseColor: Gradient(256, 256),
				material.Normal:    Solid(4, 4, flatNormal),
				material.Roughness: Gray(4, 4, 0x70),
			}},
		},
	},
}

// gridScene builds a scene of n×n quads.  Every row of quads is a
// separate part, and the parts alternate between two materials.
func gridScene(name string, resolution, n int) Scene {
	s := Scene{
		Name:       name,
		Resolution: resolution,
		Context:    &mesh.Context{},
		Materials: []Material{
			{Name: "tiles", ID: ID("tiles"), Textures: material.TextureSet{
				material.BaseColor:        Checker(128, 128, 8, Amber, Blue),
				material.AmbientOcclusion: Gray(16, 16, 0xd0),
			}},
			{Name: "grout", ID: ID("grout"), Textures: material.TextureSet{
				material.Metalness: Gray(16, 16, 0x20),
				material.Roughness: Gray(16, 16, 0xe0),
			}},
		},
	}

	cell := 1 / float64(n)
	gap := cell / 16
	for row := range n {
		part := fmt.Sprintf("row_%d", row)
		mat := "tiles"
		if row%2 == 1 {
			mat = "grout"
		}
		s.Context.Nodes = append(s.Context.Nodes, node(part, mat))

		c := color.NRGBA{R: uint8(row * 255 / n), G: 0x80, B: 0x40, A: 0xff}
		for col := range n {
			u0 := float64(col)*cell + gap
			v0 := float64(row)*cell + gap
			s.Context.Triangles = append(s.Context.Triangles,
				quad(part, c, u0, v0, u0+cell-2*gap, v0+cell-2*gap)...)
		}
	}
	return s
}
