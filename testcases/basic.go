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
	"image/color"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

var basicScenes = []Scene{
	{
		// A textured triangle on the left, a flat blue triangle on the
		// right.
		Name:       "two_quadrants",
		Resolution: 128,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("left", Amber, pt(0.05, 0.1), pt(0.45, 0.1), pt(0.05, 0.9)),
				tri("right", Blue, pt(0.55, 0.1), pt(0.95, 0.1), pt(0.95, 0.9)),
			},
			Nodes: []mesh.Node{
				node("left", "red"),
				node("right", "none"),
			},
		},
		Materials: []Material{
			{Name: "red", ID: ID("red"), Textures: material.TextureSet{
				material.BaseColor: Solid(64, 64, Red),
			}},
		},
	},
	{
		Name:       "flat_colors",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: concat(
				quad("a", Red, 0.1, 0.1, 0.4, 0.4),
				quad("b", Green, 0.6, 0.1, 0.9, 0.4),
				quad("c", Blue, 0.1, 0.6, 0.4, 0.9),
				quad("d", Amber, 0.6, 0.6, 0.9, 0.9),
			),
		},
	},
	{
		// The second triangle is painted over the first one.
		Name:       "overlap",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("below", Red, pt(0.1, 0.1), pt(0.8, 0.1), pt(0.1, 0.8)),
				tri("above", Blue, pt(0.2, 0.2), pt(0.9, 0.2), pt(0.2, 0.9)),
			},
		},
	},
	{
		Name:       "translucent",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("glass", color.NRGBA{R: 0x40, G: 0x80, B: 0xff, A: 0x80},
					pt(0.2, 0.2), pt(0.8, 0.2), pt(0.5, 0.8)),
			},
		},
	},
}

func concat(parts ...[]mesh.Triangle) []mesh.Triangle {
	var res []mesh.Triangle
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
