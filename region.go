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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/raster"
)

// Region is the dilated area of a triangle, in atlas pixel coordinates.
//
// The region is the union of the triangle and the outline obtained by
// stroking the triangle's boundary with width 2·margin and miter joins.
type Region struct {
	Triangle [3]vec.Vec2

	// Outline holds the stroke outline polygons.  A point belongs to the
	// stroke if its winding number with respect to the outline is
	// non-zero.  Outline is empty if the margin is zero.
	Outline [][]vec.Vec2
}

// Dilate returns the dilated region of a triangle for an atlas with the
// given resolution.
func Dilate(tri *mesh.Triangle, resolution int, margin float64) *Region {
	r := raster.NewRasterizer(rect.Rect{URx: float64(resolution), URy: float64(resolution)})
	return dilate(r, tri, resolution, margin)
}

func dilate(r *raster.Rasterizer, tri *mesh.Triangle, resolution int, margin float64) *Region {
	reg := &Region{Triangle: scaleUV(tri, resolution)}
	if margin > 0 {
		r.Width = 2 * margin
		r.Join = graphics.LineJoinMiter
		r.Cap = graphics.LineCapButt
		reg.Outline = r.StrokeOutline(trianglePath(reg.Triangle))
	}
	return reg
}

// scaleUV maps the texture coordinates of tri to atlas pixels.
func scaleUV(tri *mesh.Triangle, resolution int) [3]vec.Vec2 {
	s := float64(resolution)
	var res [3]vec.Vec2
	for i, uv := range tri.UV {
		res[i] = uv.Mul(s)
	}
	return res
}

func trianglePath(pts [3]vec.Vec2) *path.Data {
	return (&path.Data{}).MoveTo(pts[0]).LineTo(pts[1]).LineTo(pts[2]).Close()
}

// Bounds returns the smallest pixel rectangle containing the region.
func (reg *Region) Bounds() image.Rectangle {
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	visit := func(p vec.Vec2) {
		xMin, xMax = min(xMin, p.X), max(xMax, p.X)
		yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
	}
	for _, p := range reg.Triangle {
		visit(p)
	}
	for _, poly := range reg.Outline {
		for _, p := range poly {
			visit(p)
		}
	}
	return image.Rect(
		int(math.Floor(xMin)), int(math.Floor(yMin)),
		int(math.Floor(xMax))+1, int(math.Floor(yMax))+1,
	)
}

// Contains reports whether p lies in the region.
func (reg *Region) Contains(p vec.Vec2) bool {
	if winding(reg.Triangle[:], p) != 0 {
		return true
	}
	w := 0
	for _, poly := range reg.Outline {
		w += winding(poly, p)
	}
	return w != 0
}

// winding returns the winding number of the closed polygon poly around p.
// Edges are treated as half-open in y, so that points on shared edges are
// counted once.
func winding(poly []vec.Vec2, p vec.Vec2) int {
	w := 0
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		if a.Y <= p.Y {
			if b.Y > p.Y && cross(a, b, p) > 0 {
				w++
			}
		} else if b.Y <= p.Y && cross(a, b, p) < 0 {
			w--
		}
	}
	return w
}

// cross returns twice the signed area of the triangle a, b, p.
func cross(a, b, p vec.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// mask is an 8-bit coverage buffer for a rectangular part of the atlas.
// The buffer is reused between triangles.
type mask struct {
	img image.Alpha
}

// reset prepares m for coverage within bounds and clears it.
func (m *mask) reset(bounds image.Rectangle) {
	size := bounds.Dx() * bounds.Dy()
	if cap(m.img.Pix) < size {
		m.img.Pix = make([]uint8, size)
	}
	m.img.Pix = m.img.Pix[:size]
	clear(m.img.Pix)
	m.img.Stride = bounds.Dx()
	m.img.Rect = bounds
}

// add merges coverage into the mask, keeping the larger value per pixel.
func (m *mask) add(y, xMin int, coverage []float32) {
	off := (y-m.img.Rect.Min.Y)*m.img.Stride + xMin - m.img.Rect.Min.X
	row := m.img.Pix[off : off+len(coverage)]
	for i, c := range coverage {
		v := uint8(c*255 + 0.5)
		if v > row[i] {
			row[i] = v
		}
	}
}

// renderRegion rasterizes reg into m, clipped to clip.  The coverage of
// the fill and of the stroke outline are combined by taking the maximum,
// so that the winding directions of the two cannot cancel.  It returns
// the area of m which may be non-zero.
func (m *mask) renderRegion(r *raster.Rasterizer, reg *Region, clip image.Rectangle) image.Rectangle {
	bounds := reg.Bounds().Intersect(clip)
	if bounds.Empty() {
		return bounds
	}
	m.reset(bounds)

	r.Clip = rect.Rect{
		LLx: float64(bounds.Min.X), LLy: float64(bounds.Min.Y),
		URx: float64(bounds.Max.X), URy: float64(bounds.Max.Y),
	}
	r.FillPolygon(reg.Triangle[:], m.add)
	for _, poly := range reg.Outline {
		r.FillPolygon(poly, m.add)
	}
	return bounds
}
