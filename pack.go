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
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// Pack merges three single-channel canvases into one image.  The gray
// value of metal goes into the blue component, rough into red and ao into
// green.  Components whose canvas is nil are left at zero.  All pixels of
// the result are opaque.
//
// Pack returns nil if all three canvases are nil.  The non-nil canvases
// must have identical bounds.
func Pack(metal, rough, ao *image.NRGBA) *image.NRGBA {
	var bounds image.Rectangle
	switch {
	case metal != nil:
		bounds = metal.Rect
	case rough != nil:
		bounds = rough.Rect
	case ao != nil:
		bounds = ao.Rect
	default:
		return nil
	}

	res := image.NewNRGBA(bounds)
	parallelRows(bounds.Dy(), func(yMin, yMax int) {
		for y := yMin; y < yMax; y++ {
			out := res.Pix[y*res.Stride : y*res.Stride+4*bounds.Dx()]
			for i := 0; i < len(out); i += 4 {
				if rough != nil {
					out[i] = grayAt(rough, y, i)
				}
				if ao != nil {
					out[i+1] = grayAt(ao, y, i)
				}
				if metal != nil {
					out[i+2] = grayAt(metal, y, i)
				}
				out[i+3] = 0xff
			}
		}
	})
	return res
}

// grayAt returns the gray value of the pixel at byte offset i in row y.
func grayAt(img *image.NRGBA, y, i int) uint8 {
	p := img.Pix[y*img.Stride+i:]
	return uint8(gray(int(p[0]), int(p[1]), int(p[2])))
}

// gray returns the luma-weighted gray value of a color.
func gray[T constraints.Integer](r, g, b T) T {
	return (r*11 + g*16 + b*5) / 32
}

// parallelRows splits the rows 0, ..., n-1 into contiguous bands and
// calls fn for each band on a separate goroutine.  It returns once all
// calls have finished.
func parallelRows(n int, fn func(yMin, yMax int)) {
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	band := (n + workers - 1) / workers
	for yMin := 0; yMin < n; yMin += band {
		yMax := min(yMin+band, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(yMin, yMax)
		}()
	}
	wg.Wait()
}
