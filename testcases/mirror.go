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
	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

var mirrorScenes = []Scene{
	{
		// The right wing mirrors the left wing, so that the override
		// for the left wing applies to both.
		Name:       "mirror_override",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: concat(
				quad("left_wing", Red, 0.05, 0.1, 0.45, 0.9),
				quad("right_wing", Green, 0.55, 0.1, 0.95, 0.9),
			),
			Nodes: []mesh.Node{
				node("left_wing", "paint"),
				mirror("right_wing", "paint", "left_wing"),
			},
		},
		Materials: []Material{
			{Name: "paint", ID: ID("paint"), Textures: material.TextureSet{
				material.BaseColor: Solid(8, 8, Red),
			}},
			{Name: "carbon", ID: ID("carbon"), Textures: material.TextureSet{
				material.BaseColor: Solid(8, 8, Blue),
				material.Roughness: Gray(8, 8, 0x30),
			}},
		},
		Overrides: material.Overrides{ID("left_wing"): ID("carbon")},
	},
	{
		// Without an override, a mirror node uses its own baked-in
		// material.
		Name:       "mirror_baked",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: concat(
				quad("left_door", Red, 0.05, 0.1, 0.45, 0.9),
				quad("right_door", Green, 0.55, 0.1, 0.95, 0.9),
			),
			Nodes: []mesh.Node{
				node("left_door", "paint"),
				mirror("right_door", "primer", "left_door"),
			},
		},
		Materials: []Material{
			{Name: "paint", ID: ID("paint"), Textures: material.TextureSet{
				material.BaseColor: Solid(8, 8, Red),
			}},
			{Name: "primer", ID: ID("primer"), Textures: material.TextureSet{
				material.BaseColor: Gray(8, 8, 0xc0),
			}},
		},
	},
	{
		// Two nodes of the same part use different materials.  The
		// later node determines the maps of the part.
		Name:       "shared_part_last_wins",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: quad("hull", Amber, 0.1, 0.1, 0.9, 0.9),
			Nodes: []mesh.Node{
				node("hull", "paint"),
				node("hull", "primer"),
			},
		},
		Materials: []Material{
			{Name: "paint", ID: ID("paint"), Textures: material.TextureSet{
				material.BaseColor: Solid(8, 8, Red),
			}},
			{Name: "primer", ID: ID("primer"), Textures: material.TextureSet{
				material.BaseColor: Gray(8, 8, 0xc0),
			}},
		},
	},
}
