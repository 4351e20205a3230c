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
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"seehuhn.de/go/geom/vec"
)

// ErrInvalidColor is returned for malformed "#rrggbb" color strings.
var ErrInvalidColor = errors.New("invalid color")

// A scene file is a TOML document of the form
//
//	[[node]]
//	part = "6f1c..."
//	material = "0b4e..."
//	mirror_from = "..."          # optional
//
//	[[triangle]]
//	uv = [[0.0, 0.0], [0.5, 0.0], [0.0, 0.5]]
//	part = "6f1c..."
//	node = "..."                 # optional
//	color = "#ff8000"
type sceneFile struct {
	Nodes     []sceneNode     `toml:"node"`
	Triangles []sceneTriangle `toml:"triangle"`
}

type sceneNode struct {
	Part       uuid.UUID `toml:"part"`
	Material   uuid.UUID `toml:"material"`
	MirrorFrom uuid.UUID `toml:"mirror_from"`
}

type sceneTriangle struct {
	UV    [3][2]float64 `toml:"uv"`
	Part  uuid.UUID     `toml:"part"`
	Node  uuid.UUID     `toml:"node"`
	Color string        `toml:"color"`
}

// ReadScene decodes a mesh context from a TOML scene file.
func ReadScene(r io.Reader) (*Context, error) {
	var f sceneFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	ctx := &Context{
		Nodes:     make([]Node, len(f.Nodes)),
		Triangles: make([]Triangle, len(f.Triangles)),
	}
	for i, n := range f.Nodes {
		ctx.Nodes[i] = Node{PartID: n.Part, MaterialID: n.Material, MirrorFromPartID: n.MirrorFrom}
	}
	for i, t := range f.Triangles {
		col, err := ParseColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		tri := Triangle{
			Source: SourceNode{PartID: t.Part, NodeID: t.Node},
			Color:  col,
		}
		for j, uv := range t.UV {
			tri.UV[j] = vec.Vec2{X: uv[0], Y: uv[1]}
		}
		ctx.Triangles[i] = tri
	}
	return ctx, nil
}

// WriteScene encodes ctx as a TOML scene file.
func WriteScene(w io.Writer, ctx *Context) error {
	f := sceneFile{
		Nodes:     make([]sceneNode, len(ctx.Nodes)),
		Triangles: make([]sceneTriangle, len(ctx.Triangles)),
	}
	for i, n := range ctx.Nodes {
		f.Nodes[i] = sceneNode{Part: n.PartID, Material: n.MaterialID, MirrorFrom: n.MirrorFromPartID}
	}
	for i, tri := range ctx.Triangles {
		t := sceneTriangle{
			Part:  tri.Source.PartID,
			Node:  tri.Source.NodeID,
			Color: FormatColor(tri.Color),
		}
		for j, uv := range tri.UV {
			t.UV[j] = [2]float64{uv.X, uv.Y}
		}
		f.Triangles[i] = t
	}
	return toml.NewEncoder(w).Encode(f)
}

// ParseColor parses a color of the form "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor is the inverse of [ParseColor].  The alpha component is
// omitted for opaque colors.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
