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

import "errors"

var (
	// ErrAllocation is returned when the atlas canvases cannot be
	// allocated.  No partial result is produced.
	ErrAllocation = errors.New("cannot allocate atlas canvas")

	// ErrInvalidMargin is returned for negative or non-finite margins.
	ErrInvalidMargin = errors.New("invalid dilation margin")

	// ErrJobStarted is returned when a Job is run a second time.
	ErrJobStarted = errors.New("bake job already started")
)
