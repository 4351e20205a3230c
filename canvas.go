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
	"fmt"
	"image"
	"image/color"
	"slices"

	"seehuhn.de/go/atlas/material"
)

// canvasSet holds the working images of one bake.
type canvasSet struct {
	size int

	// layers holds one canvas per material channel.  The BaseColor
	// layer is the color canvas.
	layers [material.ChannelCount]*image.NRGBA

	border *image.NRGBA
}

// newCanvasSet allocates the canvases for a bake.  The color canvas is
// filled with opaque white, all others are transparent.
func newCanvasSet(size int) (*canvasSet, error) {
	if size <= 0 || size > MaxResolution {
		return nil, fmt.Errorf("canvas size %d: %w", size, ErrAllocation)
	}
	cs := &canvasSet{size: size}
	rect := image.Rect(0, 0, size, size)
	for i := range cs.layers {
		cs.layers[i] = image.NewNRGBA(rect)
	}
	cs.border = image.NewNRGBA(rect)
	fillNRGBA(cs.layers[material.BaseColor], color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return cs, nil
}

// bounds returns the rectangle covered by all canvases.
func (cs *canvasSet) bounds() image.Rectangle {
	return image.Rect(0, 0, cs.size, cs.size)
}

// drop releases the canvas of one channel.
func (cs *canvasSet) drop(ch material.Channel) {
	cs.layers[ch] = nil
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	if len(img.Pix) == 0 {
		return
	}
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(img.Pix); filled *= 2 {
		copy(img.Pix[filled:], img.Pix[:filled])
	}
}

// cloneNRGBA returns an independent copy of img.
func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	return &image.NRGBA{
		Pix:    slices.Clone(img.Pix),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
}
