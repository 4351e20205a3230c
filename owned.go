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

import "sync/atomic"

// Owned holds a value which can be taken by exactly one caller.
//
// The zero value holds nothing.  Owned is safe for concurrent use; if
// several goroutines call Take at the same time, only one of them
// receives the value.  An Owned must not be copied after first use.
type Owned[T any] struct {
	p atomic.Pointer[T]
}

// Own returns a handle holding v.  If v is nil, the handle is empty.
func Own[T any](v *T) *Owned[T] {
	o := &Owned[T]{}
	o.put(v)
	return o
}

func (o *Owned[T]) put(v *T) {
	o.p.Store(v)
}

// Take transfers the value to the caller.  The second and all later
// calls return (nil, false), exactly as if no value had been produced.
func (o *Owned[T]) Take() (*T, bool) {
	v := o.p.Swap(nil)
	return v, v != nil
}

// Available reports whether a value can still be taken.
func (o *Owned[T]) Available() bool {
	return o.p.Load() != nil
}
