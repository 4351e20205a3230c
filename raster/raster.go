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

// Package raster computes anti-aliased pixel coverage for polygonal
// paths and their stroke outlines.
//
// Coverage is the fraction of a pixel's area inside the shape, from 0 to
// 1.  Results are delivered row by row to a callback, so that callers can
// composite directly into their own pixel buffers.  Only straight segments
// are supported; curve commands in a path are replaced by their chords.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage values for the pixels xMin, xMin+1, ...
// of row y.  The coverage slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts polygons and stroke outlines to coverage values.
// Internal buffers are kept between calls, so a single Rasterizer can be
// reused for many shapes without allocating.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this integer-aligned device rectangle.
	Clip rect.Rect

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used at the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where two segments of a subpath meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the stroke
	// width.  Longer miters are replaced by bevels.  Must be at least 1.
	MiterLimit float64

	// Flatness is the maximal deviation, in device pixels, allowed when
	// round joins and caps are approximated by polygons.
	Flatness float64

	// smallPathThreshold selects between the two fill strategies, see fill.
	smallPathThreshold int

	cover       []float32 // per-pixel change of the winding sum, reused as output
	area        []float32 // per-pixel area contribution
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool
	crossings   []float64

	segs          []segment // flattened subpaths, contiguous
	segsOffsets   []int     // start of each subpath in segs
	subpathClosed []bool

	outline        []vec.Vec2 // stroke outline vertices, all polygons contiguous
	outlineOffsets []int      // start of each polygon in outline

	bboxEmpty bool
	bboxXMin  float64
	bboxXMax  float64
	bboxYMin  float64
	bboxYMax  float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.
// Strokes default to width 1 with butt caps and miter joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is preserved.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Flatness = defaultFlatness
	r.smallPathThreshold = smallPathThreshold
}

// Fill computes the coverage of the path under the nonzero winding rule.
// All subpaths are implicitly closed.
func (r *Rasterizer) Fill(p *path.Data, emit EmitFunc) {
	r.startEdges()
	var current, start vec.Vec2
	walkPath(p, func(cmd path.Command, pt vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current, start = pt, pt
		case path.CmdLineTo:
			r.addEdge(current, pt)
			current = pt
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	})
	if current != start {
		r.addEdge(current, start)
	}
	r.fillEdges(emit)
}

// FillPolygon computes the coverage of a closed polygon under the nonzero
// winding rule.
func (r *Rasterizer) FillPolygon(poly []vec.Vec2, emit EmitFunc) {
	r.startEdges()
	r.addPolygon(poly)
	r.fillEdges(emit)
}

// walkPath visits every command of p with its end point.  Curves are
// reported as line segments to their end point.
func walkPath(p *path.Data, visit func(cmd path.Command, pt vec.Vec2)) {
	idx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			visit(cmd, p.Coords[idx])
			idx++
		case path.CmdQuadTo:
			visit(path.CmdLineTo, p.Coords[idx+1])
			idx += 2
		case path.CmdCubeTo:
			visit(path.CmdLineTo, p.Coords[idx+2])
			idx += 3
		case path.CmdClose:
			visit(cmd, vec.Vec2{})
		}
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

func (r *Rasterizer) addPolygon(poly []vec.Vec2) {
	if len(poly) < 2 {
		return
	}
	for i := 1; i < len(poly); i++ {
		r.addEdge(poly[i-1], poly[i])
	}
	r.addEdge(poly[len(poly)-1], poly[0])
}

// addEdge transforms a user-space segment to device space and records it.
// Horizontal segments do not contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, x0, x1)
	r.bboxXMax = max(r.bboxXMax, x0, x1)
	r.bboxYMin = min(r.bboxYMin, y0, y1)
	r.bboxYMax = max(r.bboxYMax, y0, y1)
}

// fillEdges rasterizes the collected edge list.
//
// Small shapes are accumulated in a 2D buffer covering the bounding box.
// Larger shapes are processed one scanline at a time using an active edge
// list, which keeps memory proportional to the width of the shape.
func (r *Rasterizer) fillEdges(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// Each edge crossing a pixel adds
//
//	cover = ±dy         (+ for downward edges)
//	area  = cover·(1-fx) (fx: horizontal position of the crossing inside the pixel)
//
// and the signed coverage of pixel i is sum(cover[0:i]) + area[i].
// Taking the absolute value clamped to 1 gives the nonzero rule.

// accumulateEdge adds the contribution of e within scanline y.  The buffers
// are indexed by x-bboxXMin.  Crossings left of the buffer are folded into
// the first pixel, crossings to the right are dropped.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixRight < bboxXMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateSpan(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses several pixel columns: split it where it crosses
	// integer x values and handle each piece separately.
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		r.accumulateSpan(e, y0, y1, sign, int(math.Floor(xMid)), cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSpan handles a piece of an edge which stays inside pixel
// column pix.
func (r *Rasterizer) accumulateSpan(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= bboxXMax {
		return
	}

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	fx := xMid - float64(pix)
	idx := pix - bboxXMin
	cover[idx] += c
	area[idx] += c * float32(1-fx)
}

// integrateRow turns accumulated cover/area values into nonzero coverage,
// in place.
func integrateRow(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros strips zero coverage from both ends of a row.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// fillSmall accumulates all edges into a 2D buffer covering the clipped
// bounding box, then integrates row by row.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		last := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateRow(coverage, r.area[off:off+width])
		if trimmed, lo := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+lo, trimmed)
		}
	}
}

// fillLarge processes one scanline at a time, keeping a list of the edges
// which intersect the current scanline.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop := float64(y)
		yBot := float64(y + 1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yBot {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yTop {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateRow(r.cover, r.area)
		if trimmed, lo := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+lo, trimmed)
		}
	}
}

const (
	// defaultMiterLimit matches the PDF/PostScript default.  Miters are
	// replaced by bevels for corners sharper than about 11.5 degrees.
	defaultMiterLimit = 10.0

	// defaultFlatness is used to approximate round joins and caps.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the largest bounding box area, in pixels,
	// for which fillSmall is used.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimal length of a stroked segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold bounds |sin θ| below which two consecutive
	// segments are treated as collinear and no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects segments doubling back on themselves,
	// cos(179.43°).
	cuspCosineThreshold = -0.9999
)
