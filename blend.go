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

import "image"

// Multiply composites src onto dst using the multiply blend mode.  Both
// images must have the same bounds.  Pixels where src is fully
// transparent are left unchanged.
//
// With non-premultiplied colors Cs, Cb and alphas as, ab the result is
//
//	ao = as + ab·(1-as)
//	co = (as·(1-ab)·Cs + as·ab·Cs·Cb + (1-as)·ab·Cb) / ao
func Multiply(dst, src *image.NRGBA) {
	w := 4 * src.Rect.Dx()
	parallelRows(src.Rect.Dy(), func(yMin, yMax int) {
		for y := yMin; y < yMax; y++ {
			s := src.Pix[y*src.Stride : y*src.Stride+w]
			d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for i := 0; i < w; i += 4 {
				sa := uint32(s[i+3])
				if sa == 0 {
					continue
				}
				da := uint32(d[i+3])

				// all weights are scaled by 255²
				wSrc := sa * (255 - da)
				wBoth := sa * da
				wDst := (255 - sa) * da
				total := wSrc + wBoth + wDst
				for c := range 3 {
					sc, dc := uint32(s[i+c]), uint32(d[i+c])
					num := wSrc*sc + wBoth*mulDiv255(sc, dc) + wDst*dc
					d[i+c] = uint8((num + total/2) / total)
				}
				d[i+3] = uint8((total + 127) / 255)
			}
		}
	})
}

// mulDiv255 returns a·b/255, rounded to the nearest integer.
func mulDiv255(a, b uint32) uint32 {
	return (a*b + 127) / 255
}
