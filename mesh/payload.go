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

package mesh

import (
	"image"
	"slices"
)

// Mesh is a renderable mesh: the unwrapped geometry together with its
// baked texture maps.
type Mesh struct {
	Context *Context

	Texture *image.NRGBA
	Normal  *image.NRGBA // nil if no part has a normal map

	// Packed holds metalness (blue), roughness (red) and ambient
	// occlusion (green).  It is nil if none of the three is present.
	Packed *image.NRGBA

	HasMetalness        bool
	HasRoughness        bool
	HasAmbientOcclusion bool
}

// Maps are the images attached to a [Mesh] by [New].
type Maps struct {
	Texture *image.NRGBA
	Normal  *image.NRGBA
	Packed  *image.NRGBA

	HasMetalness        bool
	HasRoughness        bool
	HasAmbientOcclusion bool
}

// New builds a mesh from ctx.  The mesh gets its own copies of ctx and of
// all images in maps.  The has-channel flags are only kept if a packed
// image is present.
func New(ctx *Context, maps Maps) *Mesh {
	m := &Mesh{
		Context: ctx.Clone(),
		Texture: cloneImage(maps.Texture),
		Normal:  cloneImage(maps.Normal),
	}
	if maps.Packed != nil {
		m.Packed = cloneImage(maps.Packed)
		m.HasMetalness = maps.HasMetalness
		m.HasRoughness = maps.HasRoughness
		m.HasAmbientOcclusion = maps.HasAmbientOcclusion
	}
	return m
}

func cloneImage(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	return &image.NRGBA{
		Pix:    slices.Clone(img.Pix),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
}
