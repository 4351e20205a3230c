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

// Package atlas bakes the materials of a UV-unwrapped mesh into texture
// atlases.
//
// A bake paints every triangle of a [mesh.Context] into a set of square
// canvases, one per material channel.  Each triangle is dilated by a few
// pixels before painting, so that texture filtering near UV seams does
// not pick up the background.  The resulting images are:
//
//   - the base color atlas, and an independent "final" copy of it,
//   - a border image with the undilated triangle edges,
//   - a guide image, the final image with the border multiplied on top,
//   - a normal map, if any part has one,
//   - a packed image with metalness in blue, roughness in red and
//     ambient occlusion in green, if any part has one of these,
//   - a [mesh.Mesh] carrying copies of the above.
//
// A bake is described by a [Job].  [Job.Run] performs the bake on the
// calling goroutine, [Job.Start] runs it in the background and delivers
// the [Result] over a channel.  Every image in a Result can be taken
// exactly once.
package atlas
