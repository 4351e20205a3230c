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

// flatNormal is the color of a normal map pointing straight out of the
// surface.
var flatNormal = color.NRGBA{R: 0x80, G: 0x80, B: 0xff, A: 0xff}

var channelScenes = []Scene{
	{
		Name:       "base_color_only",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: quad("panel", Amber, 0.1, 0.1, 0.9, 0.9),
			Nodes:     []mesh.Node{node("panel", "gradient")},
		},
		Materials: []Material{
			{Name: "gradient", ID: ID("gradient"), Textures: material.TextureSet{
				material.BaseColor: Gradient(64, 64),
			}},
		},
	},
	{
		Name:       "normal_map",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("bumpy", Red, pt(0.1, 0.1), pt(0.9, 0.1), pt(0.1, 0.9)),
				tri("smooth", Green, pt(0.9, 0.2), pt(0.9, 0.9), pt(0.2, 0.9)),
			},
			Nodes: []mesh.Node{node("bumpy", "bumps"), node("smooth", "none")},
		},
		Materials: []Material{
			{Name: "bumps", ID: ID("bumps"), Textures: material.TextureSet{
				material.Normal: Checker(32, 32, 4, flatNormal, color.NRGBA{R: 0xa0, G: 0x60, B: 0xf0, A: 0xff}),
			}},
		},
	},
	{
		Name:       "packed_all",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: quad("metal", Blue, 0.1, 0.1, 0.9, 0.9),
			Nodes:     []mesh.Node{node("metal", "steel")},
		},
		Materials: []Material{
			{Name: "steel", ID: ID("steel"), Textures: material.TextureSet{
				material.BaseColor:        Gray(16, 16, 0xa0),
				material.Metalness:        Gray(16, 16, 50),
				material.Roughness:        Gray(16, 16, 200),
				material.AmbientOcclusion: Gray(16, 16, 100),
			}},
		},
	},
	{
		Name:       "packed_roughness",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: quad("rubber", Red, 0.1, 0.1, 0.9, 0.9),
			Nodes:     []mesh.Node{node("rubber", "rubber")},
		},
		Materials: []Material{
			{Name: "rubber", ID: ID("rubber"), Textures: material.TextureSet{
				material.Roughness: Gray(8, 8, 200),
			}},
		},
	},
	{
		// Each part contributes a different component of the packed
		// image.
		Name:       "mixed_parts",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: concat(
				quad("frame", Red, 0.05, 0.05, 0.45, 0.95),
				quad("cloth", Green, 0.55, 0.05, 0.95, 0.95),
			),
			Nodes: []mesh.Node{node("frame", "chrome"), node("cloth", "cotton")},
		},
		Materials: []Material{
			{Name: "chrome", ID: ID("chrome"), Textures: material.TextureSet{
				material.Metalness: Gray(8, 8, 0xff),
			}},
			{Name: "cotton", ID: ID("cotton"), Textures: material.TextureSet{
				material.BaseColor:        Checker(16, 16, 2, Green, Amber),
				material.AmbientOcclusion: Gray(8, 8, 0x40),
			}},
		},
	},
}
