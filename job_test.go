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
	"errors"
	"image"
	"image/color"
	"io"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/testcases"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func testConfig(resolution int) Config {
	cfg := DefaultConfig()
	cfg.Resolution = resolution
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func newSceneJob(s testcases.Scene) *Job {
	return NewJob(s.Context, s.Overrides, s.Library(), testConfig(s.Resolution))
}

func bakeScene(t testing.TB, name string) *Result {
	t.Helper()
	res, err := newSceneJob(scene(t, name)).Run()
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func take(t testing.TB, name string, get func() (*image.NRGBA, bool)) *image.NRGBA {
	img, ok := get()
	t.Helper()
	if !ok || img == nil {
		t.Fatalf("no %s image", name)
	}
	return img
}

// uvPixel returns the atlas pixel containing the texture coordinates u, v.
func uvPixel(u, v float64, resolution int) image.Point {
	s := float64(resolution)
	return image.Pt(int(math.Floor(u*s)), int(math.Floor(v*s)))
}

func TestTwoQuadrants(t *testing.T) {
	res := bakeScene(t, "two_quadrants")
	img := take(t, "color", res.TakeColor)
	if img.Rect != image.Rect(0, 0, 128, 128) {
		t.Fatalf("unexpected color image bounds %v", img.Rect)
	}

	cases := []struct {
		name string
		at   image.Point
		want color.NRGBA
	}{
		{"textured", uvPixel(0.12, 0.25, 128), testcases.Red},
		{"flat", uvPixel(0.85, 0.25, 128), testcases.Blue},
		{"background top", image.Pt(64, 2), white},
		{"background bottom", image.Pt(64, 124), white},
	}
	for _, c := range cases {
		if got := img.NRGBAAt(c.at.X, c.at.Y); got != c.want {
			t.Errorf("%s %v: expected %v, got %v", c.name, c.at, c.want, got)
		}
	}

	if _, ok := res.TakeNormal(); ok {
		t.Error("unexpected normal map")
	}
	if _, ok := res.TakePacked(); ok {
		t.Error("unexpected packed image")
	}
	if res.HasMetalness || res.HasRoughness || res.HasAmbientOcclusion {
		t.Error("packed flags set without packed image")
	}
}

func TestDilation(t *testing.T) {
	s := scene(t, "two_quadrants")

	// (57.6, 12.8) is the right corner of the left triangle.  The pixel
	// two pixels right of it lies outside the triangle, but inside the
	// dilated region.
	probe := image.Pt(59, 12)
	for _, margin := range []float64{0, 4} {
		cfg := testConfig(s.Resolution)
		cfg.Margin = margin
		res, err := NewJob(s.Context, s.Overrides, s.Library(), cfg).Run()
		if err != nil {
			t.Fatal(err)
		}
		img := take(t, "color", res.TakeColor)
		got := img.NRGBAAt(probe.X, probe.Y)
		if margin == 0 && got != white {
			t.Errorf("margin 0: expected background at %v, got %v", probe, got)
		}
		if margin > 0 && got != testcases.Red {
			t.Errorf("margin %g: expected red at %v, got %v", margin, probe, got)
		}
	}
}

func TestTextureCrop(t *testing.T) {
	s := scene(t, "base_color_only")
	src := s.Materials[0].Textures[material.BaseColor].(*image.NRGBA)
	res := bakeScene(t, "base_color_only")
	img := take(t, "color", res.TakeColor)

	// The quad covers [6.4, 57.6]² in atlas pixels.
	for y := 8; y < 56; y++ {
		for x := 8; x < 56; x++ {
			if got, want := img.NRGBAAt(x, y), src.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestFlatColors(t *testing.T) {
	res := bakeScene(t, "flat_colors")
	img := take(t, "color", res.TakeColor)

	cases := []struct {
		u, v float64
		want color.NRGBA
	}{
		{0.25, 0.25, testcases.Red},
		{0.75, 0.25, testcases.Green},
		{0.25, 0.75, testcases.Blue},
		{0.75, 0.75, testcases.Amber},
		{0.5, 0.5, white},
	}
	for _, c := range cases {
		p := uvPixel(c.u, c.v, 64)
		if got := img.NRGBAAt(p.X, p.Y); got != c.want {
			t.Errorf("(%g, %g): expected %v, got %v", c.u, c.v, c.want, got)
		}
	}
}

func TestOverlap(t *testing.T) {
	res := bakeScene(t, "overlap")
	img := take(t, "color", res.TakeColor)

	if got := img.NRGBAAt(19, 19); got != testcases.Blue {
		t.Errorf("overlapping area: expected the later triangle, got %v", got)
	}
	if got := img.NRGBAAt(7, 30); got != testcases.Red {
		t.Errorf("first triangle only: expected red, got %v", got)
	}
}

// TestNeedles checks that the dilation of long, narrow triangles does not
// reach beyond the margin into neighbouring islands.
func TestNeedles(t *testing.T) {
	res := bakeScene(t, "needles")
	img := take(t, "color", res.TakeColor)

	cases := []struct {
		name string
		p    image.Point
		want color.NRGBA
	}{
		{"needle", image.Pt(128, 129), testcases.Red},
		{"splinter", image.Pt(66, 51), testcases.Green},
		{"island", image.Pt(246, 131), testcases.Blue},
		{"left of needle", image.Pt(12, 131), white},
		{"left of splinter", image.Pt(40, 53), white},
		{"right of splinter", image.Pt(92, 53), white},
	}
	for _, c := range cases {
		if got := img.NRGBAAt(c.p.X, c.p.Y); got != c.want {
			t.Errorf("%s %v: expected %v, got %v", c.name, c.p, c.want, got)
		}
	}
}

func TestPackedRoughness(t *testing.T) {
	res := bakeScene(t, "packed_roughness")
	if !res.HasRoughness || res.HasMetalness || res.HasAmbientOcclusion {
		t.Errorf("unexpected flags: metal=%t rough=%t ao=%t",
			res.HasMetalness, res.HasRoughness, res.HasAmbientOcclusion)
	}
	packed := take(t, "packed", res.TakePacked)

	want := color.NRGBA{R: 200, A: 0xff}
	if got := packed.NRGBAAt(32, 32); got != want {
		t.Errorf("inside: expected %v, got %v", want, got)
	}
	want = color.NRGBA{A: 0xff}
	if got := packed.NRGBAAt(0, 0); got != want {
		t.Errorf("outside: expected %v, got %v", want, got)
	}
}

func TestPackedAll(t *testing.T) {
	res := bakeScene(t, "packed_all")
	if !res.HasRoughness || !res.HasMetalness || !res.HasAmbientOcclusion {
		t.Errorf("unexpected flags: metal=%t rough=%t ao=%t",
			res.HasMetalness, res.HasRoughness, res.HasAmbientOcclusion)
	}
	packed := take(t, "packed", res.TakePacked)
	want := color.NRGBA{R: 200, G: 100, B: 50, A: 0xff}
	if got := packed.NRGBAAt(32, 32); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMixedParts(t *testing.T) {
	res := bakeScene(t, "mixed_parts")
	if res.HasRoughness || !res.HasMetalness || !res.HasAmbientOcclusion {
		t.Errorf("unexpected flags: metal=%t rough=%t ao=%t",
			res.HasMetalness, res.HasRoughness, res.HasAmbientOcclusion)
	}
	packed := take(t, "packed", res.TakePacked)

	frame := uvPixel(0.25, 0.5, 64)
	if got, want := packed.NRGBAAt(frame.X, frame.Y), (color.NRGBA{B: 0xff, A: 0xff}); got != want {
		t.Errorf("frame: expected %v, got %v", want, got)
	}
	cloth := uvPixel(0.75, 0.5, 64)
	if got, want := packed.NRGBAAt(cloth.X, cloth.Y), (color.NRGBA{G: 0x40, A: 0xff}); got != want {
		t.Errorf("cloth: expected %v, got %v", want, got)
	}
}

func TestNormalMap(t *testing.T) {
	res := bakeScene(t, "normal_map")
	normal := take(t, "normal", res.TakeNormal)

	bumpy := uvPixel(0.2, 0.2, 64)
	if a := normal.NRGBAAt(bumpy.X, bumpy.Y).A; a != 0xff {
		t.Errorf("bumpy part: expected opaque normal, got alpha %d", a)
	}
	smooth := uvPixel(0.8, 0.8, 64)
	if c := normal.NRGBAAt(smooth.X, smooth.Y); c != (color.NRGBA{}) {
		t.Errorf("smooth part: expected empty normal, got %v", c)
	}
	if _, ok := res.TakePacked(); ok {
		t.Error("unexpected packed image")
	}

	res = bakeScene(t, "base_color_only")
	if _, ok := res.TakeNormal(); ok {
		t.Error("normal map produced for a scene without normal maps")
	}
}

func TestGuide(t *testing.T) {
	res := bakeScene(t, "two_quadrants")
	final := take(t, "final", res.TakeFinal)
	guide := take(t, "guide", res.TakeGuide)
	border := take(t, "border", res.TakeBorder)

	edges := 0
	b := final.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			f, g := final.NRGBAAt(x, y), guide.NRGBAAt(x, y)
			switch a := border.NRGBAAt(x, y).A; {
			case a == 0:
				if f != g {
					t.Fatalf("pixel (%d, %d) off the edges: final %v, guide %v", x, y, f, g)
				}
			case a >= 2:
				edges++
				if int(g.R)+int(g.G)+int(g.B) >= int(f.R)+int(f.G)+int(f.B) {
					t.Fatalf("edge pixel (%d, %d) not darkened: final %v, guide %v", x, y, f, g)
				}
			}
		}
	}
	if edges == 0 {
		t.Error("no edge pixels found")
	}

	// the top edge of the left triangle runs along y = 12.8
	if a := border.NRGBAAt(30, 12).A; a == 0 {
		t.Error("top edge missing from border image")
	}
	if c := border.NRGBAAt(30, 40); c.A != 0 {
		t.Errorf("border image not transparent inside triangle: %v", c)
	}
}

func TestResultImagesIndependent(t *testing.T) {
	res := bakeScene(t, "two_quadrants")
	colorImg := take(t, "color", res.TakeColor)
	final := take(t, "final", res.TakeFinal)
	if !slices.Equal(colorImg.Pix, final.Pix) {
		t.Fatal("final image differs from color image")
	}
	final.Pix[0] ^= 0xff
	if colorImg.Pix[0] == final.Pix[0] {
		t.Error("final image shares storage with the color image")
	}
}

func TestMeshPayload(t *testing.T) {
	s := scene(t, "packed_roughness")
	res, err := newSceneJob(s).Run()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := res.TakeMesh()
	if !ok {
		t.Fatal("no mesh")
	}
	final := take(t, "final", res.TakeFinal)
	packed := take(t, "packed", res.TakePacked)

	if !slices.Equal(m.Texture.Pix, final.Pix) || !slices.Equal(m.Packed.Pix, packed.Pix) {
		t.Error("mesh images differ from the result images")
	}
	if &m.Texture.Pix[0] == &final.Pix[0] || &m.Packed.Pix[0] == &packed.Pix[0] {
		t.Error("mesh shares images with the result")
	}
	if m.Normal != nil {
		t.Error("mesh has a normal map")
	}
	if !m.HasRoughness || m.HasMetalness || m.HasAmbientOcclusion {
		t.Error("mesh flags do not match the packed image")
	}
	if !reflect.DeepEqual(m.Context, s.Context) {
		t.Error("mesh context differs from the input")
	}
}

func TestTakeContext(t *testing.T) {
	s := scene(t, "two_quadrants")
	res, err := newSceneJob(s).Run()
	if err != nil {
		t.Fatal(err)
	}
	ctx, ok := res.TakeContext()
	if !ok {
		t.Fatal("no context")
	}
	if ctx == s.Context {
		t.Error("context was not copied")
	}
	if !reflect.DeepEqual(ctx, s.Context) {
		t.Error("context differs from the input")
	}
	if _, ok := res.TakeContext(); ok {
		t.Error("context taken twice")
	}
}

func TestJobCopiesInput(t *testing.T) {
	s := scene(t, "flat_colors")
	ctx := s.Context.Clone()
	job := NewJob(ctx, nil, s.Library(), testConfig(s.Resolution))

	// changes after NewJob must not affect the bake
	for i := range ctx.Triangles {
		ctx.Triangles[i].Color = testcases.Blue
	}

	res, err := job.Run()
	if err != nil {
		t.Fatal(err)
	}
	img := take(t, "color", res.TakeColor)
	p := uvPixel(0.25, 0.25, s.Resolution)
	if got := img.NRGBAAt(p.X, p.Y); got != testcases.Red {
		t.Errorf("expected %v, got %v", testcases.Red, got)
	}
}

func TestMirror(t *testing.T) {
	cases := []struct {
		scene       string
		left, right color.NRGBA
	}{
		{"mirror_override", testcases.Blue, testcases.Blue},
		{"mirror_baked", testcases.Red, color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}},
	}
	for _, c := range cases {
		t.Run(c.scene, func(t *testing.T) {
			res := bakeScene(t, c.scene)
			img := take(t, "color", res.TakeColor)
			l := uvPixel(0.25, 0.5, 64)
			if got := img.NRGBAAt(l.X, l.Y); got != c.left {
				t.Errorf("left: expected %v, got %v", c.left, got)
			}
			r := uvPixel(0.75, 0.5, 64)
			if got := img.NRGBAAt(r.X, r.Y); got != c.right {
				t.Errorf("right: expected %v, got %v", c.right, got)
			}
		})
	}
}

func TestSharedPartLastWins(t *testing.T) {
	res := bakeScene(t, "shared_part_last_wins")
	img := take(t, "color", res.TakeColor)
	want := color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	if got := img.NRGBAAt(32, 32); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAtlasEdge(t *testing.T) {
	res := bakeScene(t, "atlas_edge")
	img := take(t, "color", res.TakeColor)
	if got := img.NRGBAAt(0, 0); got != testcases.Green {
		t.Errorf("top left: expected %v, got %v", testcases.Green, got)
	}
	if got := img.NRGBAAt(63, 63); got != testcases.Amber {
		t.Errorf("bottom right: expected %v, got %v", testcases.Amber, got)
	}
}

// TestAllScenes bakes every scene and checks the basic shape of the
// result.
func TestAllScenes(t *testing.T) {
	for category, scenes := range testcases.All {
		for _, s := range scenes {
			t.Run(category+"_"+s.Name, func(t *testing.T) {
				if testing.Short() && s.Resolution > 256 {
					t.Skip("large scene")
				}
				res, err := newSceneJob(s).Run()
				if err != nil {
					t.Fatal(err)
				}
				want := image.Rect(0, 0, s.Resolution, s.Resolution)
				for _, get := range []func() (*image.NRGBA, bool){
					res.TakeColor, res.TakeFinal, res.TakeGuide, res.TakeBorder,
				} {
					img, ok := get()
					if !ok || img.Rect != want {
						t.Errorf("missing or wrong-sized image")
					}
				}
				if res.Timings.Total < res.Timings.PaintTextures {
					t.Errorf("inconsistent timings %+v", res.Timings)
				}
			})
		}
	}
}

func TestEmptyContext(t *testing.T) {
	for _, ctx := range []*mesh.Context{nil, {}} {
		res, err := NewJob(ctx, nil, nil, testConfig(16)).Run()
		if err != nil {
			t.Fatal(err)
		}
		img := take(t, "color", res.TakeColor)
		if got := img.NRGBAAt(8, 8); got != white {
			t.Errorf("expected white canvas, got %v", got)
		}
	}
}

func TestStart(t *testing.T) {
	job := newSceneJob(scene(t, "two_quadrants"))
	ch := job.Start()

	out, ok := <-ch
	if !ok {
		t.Fatal("channel closed without outcome")
	}
	if out.Err != nil || out.Result == nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if _, ok := <-ch; ok {
		t.Error("second outcome delivered")
	}
	if job.State() != Completed {
		t.Errorf("expected state %s, got %s", Completed, job.State())
	}

	out = <-job.Start()
	if !errors.Is(out.Err, ErrJobStarted) {
		t.Errorf("second start: expected ErrJobStarted, got %v", out.Err)
	}
	if _, err := job.Run(); !errors.Is(err, ErrJobStarted) {
		t.Errorf("run after start: expected ErrJobStarted, got %v", err)
	}
}

func TestStateSequence(t *testing.T) {
	job := newSceneJob(scene(t, "packed_all"))
	if job.State() != Idle {
		t.Fatalf("new job in state %s", job.State())
	}

	var seen []State
	job.trace = func(s State) { seen = append(seen, s) }
	if _, err := job.Run(); err != nil {
		t.Fatal(err)
	}

	want := []State{
		Resolving, Allocating, PaintingFill, PaintingBorder, FreeingNormal,
		Packing, FreeingPacked, BuildingGuide, BuildingMesh, Completed,
	}
	if !slices.Equal(seen, want) {
		t.Errorf("expected states %v, got %v", want, seen)
	}
}

func TestInvalidConfig(t *testing.T) {
	s := scene(t, "two_quadrants")
	cases := []struct {
		name       string
		resolution int
		margin     float64
		want       error
	}{
		{"zero resolution", 0, 4, ErrAllocation},
		{"negative resolution", -5, 4, ErrAllocation},
		{"huge resolution", MaxResolution + 1, 4, ErrAllocation},
		{"negative margin", 64, -1, ErrInvalidMargin},
		{"NaN margin", 64, math.NaN(), ErrInvalidMargin},
		{"infinite margin", 64, math.Inf(1), ErrInvalidMargin},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig(c.resolution)
			cfg.Margin = c.margin
			job := NewJob(s.Context, nil, s.Library(), cfg)

			var seen []State
			job.trace = func(s State) { seen = append(seen, s) }
			res, err := job.Run()
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
			if res != nil {
				t.Error("partial result returned")
			}
			if len(seen) != 0 {
				t.Errorf("job progressed through %v", seen)
			}
		})
	}
}
