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

package material

import (
	"github.com/google/uuid"

	"seehuhn.de/go/atlas/mesh"
)

// Resolve determines the texture maps of every part of a mesh.
//
// Nodes are visited in order.  A mirrored node looks up its material
// through the part it mirrors.  An entry in overrides takes precedence
// over the material baked into the node.  The maps found are recorded
// for the node's own part.  If several nodes share a part, the last one
// visited wins for every channel it provides.
//
// A nil library resolves no maps at all.
func Resolve(overrides Overrides, lib Library, nodes []mesh.Node) PartMaps {
	res := make(PartMaps)
	if lib == nil {
		return res
	}
	for _, node := range nodes {
		textures := lib.Textures(materialFor(overrides, node))
		for ch, img := range textures {
			res.Add(node.PartID, Channel(ch), img)
		}
	}
	return res
}

func materialFor(overrides Overrides, node mesh.Node) uuid.UUID {
	if id, ok := overrides[node.LookupPartID()]; ok {
		return id
	}
	return node.MaterialID
}

// Snapshot builds an override table from per-part attributes, as stored
// in a document snapshot.  Parts are keyed by their ID in string form;
// the material is taken from the "materialId" attribute.  Entries which
// do not parse as IDs are skipped.
func Snapshot(parts map[string]map[string]string) Overrides {
	res := make(Overrides)
	for partKey, attrs := range parts {
		matKey, ok := attrs["materialId"]
		if !ok {
			continue
		}
		partID, err := uuid.Parse(partKey)
		if err != nil {
			continue
		}
		matID, err := uuid.Parse(matKey)
		if err != nil {
			continue
		}
		res[partID] = matID
	}
	return res
}
