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
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/raster"
)

// painter paints the dilated triangles of a mesh into a canvas set.
type painter struct {
	size   int
	margin float64
	maps   material.PartMaps

	rast *raster.Rasterizer
	mask mask

	// fitted caches the material images, resampled to the atlas size.
	fitted map[image.Image]image.Image

	// painted records which channels received content from any
	// triangle.
	painted [material.ChannelCount]bool
}

func newPainter(size int, margin float64, maps material.PartMaps) *painter {
	return &painter{
		size:   size,
		margin: margin,
		maps:   maps,
		rast:   raster.NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)}),
		fitted: make(map[image.Image]image.Image),
	}
}

// paint draws one triangle into every canvas for which its part has a
// map.  Where the part has no base color map, the color canvas is filled
// with the triangle's flat color.  Pixels painted by earlier triangles
// are overwritten.
func (p *painter) paint(tri *mesh.Triangle, cs *canvasSet) {
	reg := dilate(p.rast, tri, p.size, p.margin)
	bounds := p.mask.renderRegion(p.rast, reg, cs.bounds())
	if bounds.Empty() {
		return
	}

	part := tri.Source.PartID
	for i, dst := range cs.layers {
		ch := material.Channel(i)
		src := p.maps.Get(part, ch)
		switch {
		case src != nil:
			draw.DrawMask(dst, bounds, p.fit(src), bounds.Min, &p.mask.img, bounds.Min, draw.Over)
			p.painted[ch] = true
		case ch == material.BaseColor:
			draw.DrawMask(dst, bounds, image.NewUniform(tri.Color), image.Point{}, &p.mask.img, bounds.Min, draw.Over)
		}
	}
}

// fit returns src resampled to cover the whole atlas.  Material maps are
// authored for the unit UV square, so that a map of any size is stretched
// to the atlas resolution.  Results are cached for the duration of the
// bake.
func (p *painter) fit(src image.Image) image.Image {
	if _, ok := src.(*image.Uniform); ok {
		return src
	}
	if img, ok := p.fitted[src]; ok {
		return img
	}

	atlasRect := image.Rect(0, 0, p.size, p.size)
	var img image.Image
	if src.Bounds() == atlasRect {
		img = src
	} else {
		dst := image.NewNRGBA(atlasRect)
		draw.BiLinear.Scale(dst, atlasRect, src, src.Bounds(), draw.Src, nil)
		img = dst
	}
	p.fitted[src] = img
	return img
}

// borderPainter draws the undilated triangle edges.
type borderPainter struct {
	size int
	col  *image.Uniform
	rast *raster.Rasterizer
	mask mask
}

func newBorderPainter(size int, col color.NRGBA) *borderPainter {
	return &borderPainter{
		size: size,
		col:  image.NewUniform(col),
		rast: raster.NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)}),
	}
}

// paint strokes the three edges of tri onto dst as one pixel wide
// anti-aliased lines.
func (bp *borderPainter) paint(tri *mesh.Triangle, dst *image.NRGBA) {
	pts := scaleUV(tri, bp.size)
	reg := &Region{Triangle: pts}

	// The one pixel wide stroke extends half a pixel beyond the corners.
	bounds := reg.Bounds().Inset(-1).Intersect(dst.Bounds())
	if bounds.Empty() {
		return
	}
	bp.mask.reset(bounds)

	r := bp.rast
	r.Reset(rect.Rect{
		LLx: float64(bounds.Min.X), LLy: float64(bounds.Min.Y),
		URx: float64(bounds.Max.X), URy: float64(bounds.Max.Y),
	})
	r.Width = 1
	r.Stroke(edgesPath(pts), bp.mask.add)

	draw.DrawMask(dst, bounds, bp.col, image.Point{}, &bp.mask.img, bounds.Min, draw.Over)
}

// edgesPath returns the three edges of a triangle as separate open
// subpaths.
func edgesPath(pts [3]vec.Vec2) *path.Data {
	p := &path.Data{}
	for i := range pts {
		p = p.MoveTo(pts[i]).LineTo(pts[(i+1)%3])
	}
	return p
}
