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

package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
)

// input holds everything read from disk for one bake.
type input struct {
	ctx       *mesh.Context
	lib       material.Library
	overrides material.Overrides

	// files lists all files the bake depends on.
	files []string
}

func readInput(c *bakeConfig) (*input, error) {
	in := &input{}

	fd, err := os.Open(c.Scene)
	if err != nil {
		return nil, err
	}
	in.ctx, err = mesh.ReadScene(fd)
	fd.Close()
	if err != nil {
		return nil, err
	}
	in.files = append(in.files, c.Scene)

	if c.Library != "" {
		lib, err := material.LoadLibrary(c.Library)
		if err != nil {
			return nil, err
		}
		in.lib = lib
		in.files = append(in.files, c.Library)
		in.files = append(in.files, lib.Files...)
	}

	if c.Overrides != "" {
		in.overrides, err = readOverrides(c.Overrides)
		if err != nil {
			return nil, err
		}
		in.files = append(in.files, c.Overrides)
	}

	return in, nil
}

// readOverrides reads a table of part attributes, where the attribute
// "materialId" selects the material of a part:
//
//	[6f1c2d3e-0000-4000-8000-000000000001]
//	materialId = "0b4e5f60-0000-4000-8000-00000000000a"
func readOverrides(name string) (material.Overrides, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var parts map[string]map[string]string
	if err := toml.NewDecoder(fd).Decode(&parts); err != nil {
		return nil, err
	}
	return material.Snapshot(parts), nil
}
