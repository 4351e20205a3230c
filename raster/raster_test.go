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
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// grid collects coverage values into a dense w×h buffer.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.pix[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

func triangle(a, b, c vec.Vec2) *path.Data {
	return (&path.Data{}).MoveTo(a).LineTo(b).LineTo(c).Close()
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10,
// so pixel X has coverage (2X+1)/20.
func TestTriangleCoverage(t *testing.T) {
	p := triangle(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 1})

	g := newGrid(10, 1)
	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	r.Fill(p, g.emit)

	const epsilon = 1e-6
	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, got)
		}
	}
}

// TestCoverageArea checks that the total coverage of a triangle equals
// its area, for both fill strategies.
func TestCoverageArea(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 50 {
		var pts [3]vec.Vec2
		for j := range pts {
			pts[j] = vec.Vec2{X: 2 + rng.Float64()*60, Y: 2 + rng.Float64()*60}
		}
		area := math.Abs(cross(pts[1].Sub(pts[0]), pts[2].Sub(pts[0]))) / 2

		for _, threshold := range []int{1 << 30, 0} {
			t.Run(fmt.Sprintf("%d_%d", i, threshold), func(t *testing.T) {
				g := newGrid(64, 64)
				r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
				r.smallPathThreshold = threshold
				r.FillPolygon(pts[:], g.emit)
				if got := g.sum(); math.Abs(got-area) > 1e-3*max(1, area) {
					t.Errorf("total coverage %.4f, want %.4f", got, area)
				}
			})
		}
	}
}

// TestStrategiesAgree compares the 2D-buffer and active-edge-list
// strategies pixel by pixel.
func TestStrategiesAgree(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 3}).
		LineTo(vec.Vec2{X: 58, Y: 20}).
		LineTo(vec.Vec2{X: 12, Y: 61}).
		Close().
		MoveTo(vec.Vec2{X: 40, Y: 40}).
		LineTo(vec.Vec2{X: 60, Y: 44}).
		LineTo(vec.Vec2{X: 50, Y: 60}).
		Close()

	clip := rect.Rect{URx: 64, URy: 64}
	a, b := newGrid(64, 64), newGrid(64, 64)

	r := NewRasterizer(clip)
	r.smallPathThreshold = 1 << 30
	r.Fill(p, a.emit)

	r.Reset(clip)
	r.smallPathThreshold = 0
	r.Fill(p, b.emit)

	for y := range 64 {
		for x := range 64 {
			if d := math.Abs(float64(a.at(x, y) - b.at(x, y))); d > 1e-5 {
				t.Fatalf("pixel (%d,%d): %.5f vs %.5f", x, y, a.at(x, y), b.at(x, y))
			}
		}
	}
}

func TestClip(t *testing.T) {
	g := newGrid(16, 16)
	r := NewRasterizer(rect.Rect{LLx: 4, LLy: 4, URx: 12, URy: 12})
	r.FillPolygon([]vec.Vec2{{X: -10, Y: -10}, {X: 30, Y: -10}, {X: 30, Y: 30}, {X: -10, Y: 30}}, g.emit)

	for y := range 16 {
		for x := range 16 {
			want := float32(0)
			if x >= 4 && x < 12 && y >= 4 && y < 12 {
				want = 1
			}
			if got := g.at(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %.3f, want %.0f", x, y, got, want)
			}
		}
	}
}

func TestStrokeLine(t *testing.T) {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 10, Y: 32}).LineTo(vec.Vec2{X: 54, Y: 32})

	type probe struct {
		x, y int
		want float32
	}
	cases := []struct {
		name   string
		cap    graphics.LineCapStyle
		probes []probe
	}{
		{"butt", graphics.LineCapButt, []probe{{20, 28, 1}, {20, 35, 1}, {20, 27, 0}, {20, 36, 0}, {9, 32, 0}, {54, 32, 0}}},
		{"square", graphics.LineCapSquare, []probe{{6, 32, 1}, {57, 32, 1}, {5, 32, 0}, {58, 32, 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(64, 64)
			r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
			r.Width = 8
			r.Cap = tc.cap
			r.Stroke(p, g.emit)
			for _, pr := range tc.probes {
				if got := g.at(pr.x, pr.y); math.Abs(float64(got-pr.want)) > 1e-5 {
					t.Errorf("pixel (%d,%d): got %.3f, want %.0f", pr.x, pr.y, got, pr.want)
				}
			}
		})
	}
}

// TestStrokeJoin strokes a closed square and inspects its outer corner.
// A miter fills the corner pixel, a bevel cuts it off.
func TestStrokeJoin(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 30}).
		LineTo(vec.Vec2{X: 10, Y: 30}).
		Close()

	cases := []struct {
		name   string
		join   graphics.LineJoinStyle
		corner float32
	}{
		{"miter", graphics.LineJoinMiter, 1},
		{"bevel", graphics.LineJoinBevel, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(40, 40)
			r := NewRasterizer(rect.Rect{URx: 40, URy: 40})
			r.Width = 4
			r.Join = tc.join
			r.Stroke(square, g.emit)

			if got := g.at(8, 8); math.Abs(float64(got-tc.corner)) > 1e-5 {
				t.Errorf("corner pixel: got %.3f, want %.0f", got, tc.corner)
			}
			if got := g.at(11, 20); math.Abs(float64(got-1)) > 1e-5 {
				t.Errorf("stroke band: got %.3f, want 1", got)
			}
			if got := g.at(20, 20); math.Abs(float64(got)) > 1e-5 {
				t.Errorf("interior: got %.3f, want 0", got)
			}
		})
	}
}

func TestStrokeOutline(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 100, URy: 100})
	r.Width = 6

	tri := triangle(vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: 80, Y: 25}, vec.Vec2{X: 40, Y: 70})
	polys := r.StrokeOutline(tri)
	if len(polys) != 1 {
		t.Fatalf("got %d outline polygons, want 1", len(polys))
	}

	// Every outline vertex is either a corner of the path, where the
	// inner side turns, or at least half the width away from the path and
	// not further away than the miter limit allows.
	for _, pt := range polys[0] {
		d := distToPolyline(pt, []vec.Vec2{{X: 20, Y: 20}, {X: 80, Y: 25}, {X: 40, Y: 70}, {X: 20, Y: 20}})
		if d < 1e-9 {
			continue
		}
		if d < 3-1e-9 || d > 3*r.MiterLimit+1e-9 {
			t.Errorf("outline vertex %v at distance %.3f", pt, d)
		}
	}

	// the returned slices must not alias the internal buffer
	polys[0][0] = vec.Vec2{X: -1, Y: -1}
	again := r.StrokeOutline(tri)
	if again[0][0] == polys[0][0] {
		t.Error("outline aliases internal buffer")
	}
}

// TestStrokeThin checks that the stroke of a long, narrow closed path
// stays close to the path.  The inner offset lines
// of such paths intersect far away from the path itself.
func TestStrokeThin(t *testing.T) {
	cases := []struct {
		name string
		pts  []vec.Vec2
	}{
		{"sliver", []vec.Vec2{{X: 25.6, Y: 128}, {X: 230.4, Y: 128}, {X: 128, Y: 130.56}}},
		{"needle", []vec.Vec2{{X: 100, Y: 100}, {X: 130, Y: 100}, {X: 115, Y: 101.5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			const width = 8
			closed := append(tc.pts, tc.pts[0])
			p := triangle(tc.pts[0], tc.pts[1], tc.pts[2])

			for _, join := range []graphics.LineJoinStyle{graphics.LineJoinMiter, graphics.LineJoinBevel} {
				r := NewRasterizer(rect.Rect{URx: 256, URy: 256})
				r.Width = width
				r.Join = join

				// The corners of these triangles are either so sharp that
				// the miter limit applies, or so flat that the miter hardly
				// extends beyond the stroke.
				limit := width/2*1.01 + math.Sqrt2/2
				g := newGrid(256, 256)
				r.Stroke(p, g.emit)
				for y := range g.h {
					for x := range g.w {
						if g.at(x, y) == 0 {
							continue
						}
						c := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
						if d := distToPolyline(c, closed); d > limit {
							t.Fatalf("join %d: pixel (%d,%d) covered at distance %.2f", join, x, y, d)
						}
					}
				}

				// points next to the path are inside the stroke
				for i := range tc.pts {
					a, b := closed[i], closed[i+1]
					mid := a.Add(b).Mul(0.5)
					n := vec.Vec2{X: a.Y - b.Y, Y: b.X - a.X}
					n = n.Mul(1 / n.Length())
					for _, s := range []float64{-2, 2} {
						q := mid.Add(n.Mul(s))
						if got := g.at(int(q.X), int(q.Y)); got < 0.5 {
							t.Errorf("join %d: pixel near %v has coverage %.3f", join, q, got)
						}
					}
				}
			}
		})
	}
}

func TestStrokeEmpty(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	called := false
	r.Stroke(&path.Data{}, func(int, int, []float32) { called = true })
	r.Stroke((&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5}), func(int, int, []float32) { called = true })
	if called {
		t.Error("empty path produced coverage")
	}
}

func distToPolyline(p vec.Vec2, line []vec.Vec2) float64 {
	best := math.Inf(1)
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		ab := b.Sub(a)
		s := max(0, min(1, p.Sub(a).Dot(ab)/ab.Dot(ab)))
		best = min(best, p.Sub(a.Add(ab.Mul(s))).Length())
	}
	return best
}
