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
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"seehuhn.de/go/atlas"
	"seehuhn.de/go/atlas/mesh"
)

// writeResult stores all outputs of a bake in dir.  Images which were not
// produced are skipped.  It returns the names of the files written.
func writeResult(dir string, res *atlas.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	images := []struct {
		name string
		take func() (*image.NRGBA, bool)
	}{
		{"color.png", res.TakeColor},
		{"final.png", res.TakeFinal},
		{"guide.png", res.TakeGuide},
		{"border.png", res.TakeBorder},
		{"normal.png", res.TakeNormal},
		{"packed.png", res.TakePacked},
	}

	var written []string
	for _, out := range images {
		img, ok := out.take()
		if !ok {
			continue
		}
		name := filepath.Join(dir, out.name)
		if err := writePNG(name, img); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	// The mesh context is written back as a scene file, next to the
	// images baked for it.
	if m, ok := res.TakeMesh(); ok {
		name := filepath.Join(dir, "mesh.toml")
		fd, err := os.Create(name)
		if err != nil {
			return written, err
		}
		err = mesh.WriteScene(fd, m.Context)
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("%s: %w", name, err)
		}
		written = append(written, name)
	}
	return written, nil
}

func writePNG(name string, img image.Image) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(fd, img); err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return fd.Close()
}
