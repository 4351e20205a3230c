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

// Package material resolves mesh parts to the texture maps of their
// materials.
//
// Every material has up to one image per [Channel].  A missing image means
// the channel is not present; it is never replaced by a default value.
package material

import (
	"image"

	"github.com/google/uuid"
)

// Channel is one material property plane.
type Channel int

// These are the supported channels.
const (
	BaseColor Channel = iota
	Normal
	Metalness
	Roughness
	AmbientOcclusion

	ChannelCount int = iota
)

func (c Channel) String() string {
	switch c {
	case BaseColor:
		return "base color"
	case Normal:
		return "normal"
	case Metalness:
		return "metalness"
	case Roughness:
		return "roughness"
	case AmbientOcclusion:
		return "ambient occlusion"
	default:
		return "unknown channel"
	}
}

// TextureSet holds one optional image per channel.
type TextureSet [ChannelCount]image.Image

// IsEmpty reports whether no channel is present.
func (ts *TextureSet) IsEmpty() bool {
	for _, img := range ts {
		if img != nil {
			return false
		}
	}
	return true
}

// Overrides maps part IDs to the material currently selected for them.
type Overrides map[uuid.UUID]uuid.UUID

// Library looks up the textures of a material.  Unknown materials yield
// an empty TextureSet.
type Library interface {
	Textures(id uuid.UUID) TextureSet
}

// MapLibrary is an in-memory Library.
type MapLibrary map[uuid.UUID]TextureSet

// Textures implements the [Library] interface.
func (m MapLibrary) Textures(id uuid.UUID) TextureSet {
	return m[id]
}

// PartMaps holds the texture maps resolved for each mesh part.
type PartMaps map[uuid.UUID]*TextureSet

// Add records img as the ch map of the given part, replacing any earlier
// image.  A nil image is ignored.
func (pm PartMaps) Add(part uuid.UUID, ch Channel, img image.Image) {
	if img == nil {
		return
	}
	ts := pm[part]
	if ts == nil {
		ts = &TextureSet{}
		pm[part] = ts
	}
	ts[ch] = img
}

// Get returns the ch map of the given part, or nil if the part does not
// have this channel.
func (pm PartMaps) Get(part uuid.UUID, ch Channel) image.Image {
	ts := pm[part]
	if ts == nil {
		return nil
	}
	return ts[ch]
}
