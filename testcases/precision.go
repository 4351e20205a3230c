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
	"seehuhn.de/go/atlas/mesh"
)

var precisionScenes = []Scene{
	// A long thin triangle, narrower than one pixel.
	{
		Name:       "sliver",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("sliver", Red, pt(0.1, 0.5), pt(0.9, 0.505), pt(0.1, 0.51)),
			},
		},
	},
	// Long, narrow triangles whose inradius is much smaller than the
	// dilation margin, next to an island which is painted first.
	{
		Name:       "needles",
		Resolution: 256,
		Context: &mesh.Context{
			Triangles: concat(
				quad("island", Blue, 0.94, 0.45, 0.99, 0.55),
				[]mesh.Triangle{
					tri("needle", Red, pt(0.1, 0.5), pt(0.9, 0.5), pt(0.5, 0.51)),
					tri("splinter", Green, pt(0.2, 0.2), pt(0.317, 0.2), pt(0.2585, 0.2059)),
				},
			),
		},
	},
	// A triangle covering less than one pixel.
	{
		Name:       "tiny",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("tiny", Blue, pt(0.501, 0.501), pt(0.509, 0.502), pt(0.503, 0.51)),
			},
		},
	},
	// Triangles touching the atlas boundary, so that the dilated region
	// extends outside the image.
	{
		Name:       "atlas_edge",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("corner", Green, pt(0, 0), pt(0.5, 0), pt(0, 0.5)),
				tri("opposite", Amber, pt(1, 1), pt(0.5, 1), pt(1, 0.5)),
			},
		},
	},
	// Texture coordinates outside the unit square.
	{
		Name:       "outside",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("outside", Red, pt(1.2, 0.1), pt(1.8, 0.1), pt(1.5, 0.9)),
				tri("partly", Blue, pt(-0.3, 0.2), pt(0.3, 0.2), pt(0, 0.8)),
			},
		},
	},
	// A triangle with all three vertices on one line.
	{
		Name:       "degenerate",
		Resolution: 64,
		Context: &mesh.Context{
			Triangles: []mesh.Triangle{
				tri("line", Red, pt(0.1, 0.1), pt(0.5, 0.5), pt(0.9, 0.9)),
				tri("point", Blue, pt(0.7, 0.2), pt(0.7, 0.2), pt(0.7, 0.2)),
			},
		},
	},
}
