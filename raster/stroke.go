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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a stroked line segment in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, T rotated by 90° counter-clockwise
}

// Stroke computes the coverage of the stroked path, using Width, Cap,
// Join and MiterLimit.  Overlapping parts of the outline are painted
// once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.buildOutline(p)
	if len(r.outlineOffsets) == 0 {
		return
	}

	r.startEdges()
	for i := range r.outlineOffsets {
		r.addPolygon(r.outlinePolygon(i))
	}
	r.fillEdges(emit)
}

// StrokeOutline returns the polygons which make up the stroke outline of
// p, in user space.  Under the nonzero winding rule, their union is the
// stroked area.  The returned slices are freshly allocated.
func (r *Rasterizer) StrokeOutline(p *path.Data) [][]vec.Vec2 {
	r.buildOutline(p)
	res := make([][]vec.Vec2, len(r.outlineOffsets))
	for i := range r.outlineOffsets {
		res[i] = append([]vec.Vec2(nil), r.outlinePolygon(i)...)
	}
	return res
}

func (r *Rasterizer) outlinePolygon(i int) []vec.Vec2 {
	end := len(r.outline)
	if i+1 < len(r.outlineOffsets) {
		end = r.outlineOffsets[i+1]
	}
	return r.outline[r.outlineOffsets[i]:end]
}

// buildOutline fills r.outline and r.outlineOffsets with one polygon per
// stroked subpath.
func (r *Rasterizer) buildOutline(p *path.Data) {
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	points := r.flatten(p)

	// A subpath without orientation only produces output for round caps.
	if r.Cap == graphics.LineCapRound {
		for _, pt := range points {
			start := len(r.outline)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.outlineOffsets = append(r.outlineOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		end := len(r.segs)
		if i+1 < len(r.segsOffsets) {
			end = r.segsOffsets[i+1]
		}
		start := len(r.outline)
		r.strokeSubpath(r.segs[r.segsOffsets[i]:end], r.subpathClosed[i])
		if len(r.outline)-start >= 3 {
			r.outlineOffsets = append(r.outlineOffsets, start)
		} else {
			r.outline = r.outline[:start]
		}
	}
}

// flatten splits p into subpaths of non-degenerate segments, stored in
// r.segs.  The points of subpaths which have no segments at all are
// returned.
func (r *Rasterizer) flatten(p *path.Data) (degenerate []vec.Vec2) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]

	var current, start vec.Vec2
	first := 0
	open := false
	drawn := false

	finish := func(closed bool) {
		if !open || (!drawn && len(r.segs) == first) {
			return
		}
		if len(r.segs) == first {
			degenerate = append(degenerate, start)
		} else {
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	walkPath(p, func(cmd path.Command, pt vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current, start = pt, pt
			first = len(r.segs)
			open, drawn = true, false
		case path.CmdLineTo:
			if !open {
				return
			}
			drawn = true
			r.addSegment(current, pt)
			current = pt
		case path.CmdClose:
			if !open {
				return
			}
			if current != start {
				r.addSegment(current, start)
			}
			drawn = true
			finish(true)
			current = start
			first = len(r.segs)
			open, drawn = false, false
		}
	})
	finish(false)
	return degenerate
}

func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// cross returns the z component of t1 × t2.
func cross(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// strokeSubpath appends the outline of one subpath to r.outline.
//
// The outline is a single polygon: the +N side is walked forward, the -N
// side backward.  At every corner the join geometry goes on the outer
// side, and the inner side is routed through the corner point itself.
// Under the nonzero rule the polygon then covers exactly the segment
// rectangles together with the joins, however short the segments are.
func (r *Rasterizer) strokeSubpath(segs []segment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		// +N side, forward.  The corner at the end of segment i is
		// between segs[i] and segs[(i+1)%n].
		r.outline = append(r.outline, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			next := first
			if i < len(segs)-1 {
				next = &segs[i+1]
			}
			r.corner(&segs[i], next, d, true)
		}

		// -N side, backward, starting with the closing corner.
		r.corner(last, first, d, false)
		for i := len(segs) - 1; i > 0; i-- {
			r.corner(&segs[i-1], &segs[i], d, false)
		}
		r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)))
		return
	}

	r.addCap(first.A, first.T.Mul(-1), d)
	r.outline = append(r.outline, first.A.Add(first.N.Mul(d)))
	for i := 0; i < len(segs)-1; i++ {
		r.corner(&segs[i], &segs[i+1], d, true)
	}
	r.outline = append(r.outline, last.B.Add(last.N.Mul(d)))

	r.addCap(last.B, last.T, d)
	r.outline = append(r.outline, last.B.Sub(last.N.Mul(d)))
	for i := len(segs) - 1; i > 0; i-- {
		r.corner(&segs[i-1], &segs[i], d, false)
	}
	r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)))
}

// corner emits the outline points around the corner between segments a
// and b.  On the forward (+N) pass the points are emitted in path order,
// on the backward pass in reverse.
func (r *Rasterizer) corner(a, b *segment, d float64, positive bool) {
	P := b.A
	sin := cross(a.T, b.T)
	aOff, bOff := a.B.Add(a.N.Mul(d)), b.A.Add(b.N.Mul(d))
	if !positive {
		aOff, bOff = a.B.Sub(a.N.Mul(d)), b.A.Sub(b.N.Mul(d))
	}

	switch {
	case math.Abs(sin) < collinearityThreshold:
		// Straight continuation, or a reversal where both offset
		// points lie on one line through P.
		if positive {
			r.outline = append(r.outline, aOff, bOff)
		} else {
			r.outline = append(r.outline, bOff, aOff)
		}
	case (sin > 0) == positive:
		// inner side of the corner
		if positive {
			r.outline = append(r.outline, aOff, P, bOff)
		} else {
			r.outline = append(r.outline, bOff, P, aOff)
		}
	case positive:
		r.outline = append(r.outline, aOff)
		r.addJoin(P, a.T, b.T, d, true)
		r.outline = append(r.outline, bOff)
	default:
		r.outline = append(r.outline, bOff)
		r.addJoin(P, a.T, b.T, d, false)
		r.outline = append(r.outline, aOff)
	}
}

// addCap adds the cap at P, where T points away from the stroked segment.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	}
	// Butt caps need no extra points.
}

// addJoin adds the outer geometry of a join at P, where the tangent turns
// from T1 to T2.  The offset points on either side are added by the
// caller.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positive bool) {
	cos := T1.Dot(T2)
	sin := cross(T1, T2)
	if sin > -collinearityThreshold && sin < collinearityThreshold {
		return
	}
	if cos < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/cos(θ/2),
		// where θ is the angle between the tangents.
		halfCos := math.Sqrt((1 + cos) / 2)
		const eps = 1e-10
		if halfCos > 0 && 1/halfCos <= r.MiterLimit+eps {
			bisector := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
			if !positive {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.outline = append(r.outline, P.Add(bisector.Mul(d/(l*halfCos))))
			}
		}
		// miter limit exceeded: bevel

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if positive {
			start := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sin < 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		} else {
			start := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sin > 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		}
	}
	// LineJoinBevel: the two offset points are joined directly.
}

// addArc approximates a circular arc around center, starting in direction
// startDir and sweeping by the given angle (positive is counter-clockwise).
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := radius * math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3]-r.CTM[1]*r.CTM[2]))

	n := 1
	if devRadius > r.Flatness {
		// A chord spanning the angle φ deviates from the circle by
		// r·(1-cos(φ/2)).
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		s, c := math.Sincos(sweep * float64(i) / float64(n))
		dir := vec.Vec2{
			X: startDir.X*c - startDir.Y*s,
			Y: startDir.X*s + startDir.Y*c,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}
