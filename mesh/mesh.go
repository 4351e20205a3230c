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

// Package mesh describes UV-unwrapped meshes as seen by the atlas baker.
//
// A [Context] lists the triangles of a mesh in atlas space, together with
// the geometry nodes they were generated from.  After a bake, the context
// and the produced images are bundled into a [Mesh].
package mesh

import (
	"image/color"
	"slices"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

// SourceNode identifies the geometry a triangle was generated from.
type SourceNode struct {
	PartID uuid.UUID
	NodeID uuid.UUID
}

// Triangle is a mesh triangle in atlas space.
type Triangle struct {
	// UV holds the texture coordinates of the corners, in [0,1]².
	UV [3]vec.Vec2

	Source SourceNode

	// Color is the flat material color, used where the part has no
	// base color map.
	Color color.NRGBA
}

// Node is a geometry node of the mesh.
type Node struct {
	PartID     uuid.UUID
	MaterialID uuid.UUID

	// MirrorFromPartID is the part this node mirrors, or uuid.Nil.
	MirrorFromPartID uuid.UUID
}

// IsMirror reports whether the node is a mirrored copy of another part.
func (n Node) IsMirror() bool {
	return n.MirrorFromPartID != uuid.Nil
}

// LookupPartID returns the part whose material applies to the node.
// For mirrored nodes this is the mirror source.
func (n Node) LookupPartID() uuid.UUID {
	if n.IsMirror() {
		return n.MirrorFromPartID
	}
	return n.PartID
}

// Context is the result of unwrapping a mesh.
type Context struct {
	Triangles []Triangle
	Nodes     []Node
}

// Clone returns a deep copy of c.
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	return &Context{
		Triangles: slices.Clone(c.Triangles),
		Nodes:     slices.Clone(c.Nodes),
	}
}

// Parts returns the distinct part IDs referenced by the triangles, in
// order of first use.
func (c *Context) Parts() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var res []uuid.UUID
	for _, tri := range c.Triangles {
		id := tri.Source.PartID
		if !seen[id] {
			seen[id] = true
			res = append(res, id)
		}
	}
	return res
}
