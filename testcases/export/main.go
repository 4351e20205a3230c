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

// Command export writes the test scenes to disk, in the format read by
// atlasbake.  For every scene a directory testdata/scenes/<name>/ is
// created, containing scene.toml, library.toml, overrides.toml, the
// material images as PNG files, and a bake.toml configuration for
// atlasbake.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/scenes", "output directory")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "export"})

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, s := range testcases.All[category] {
			dir := filepath.Join(*outDir, category+"_"+s.Name)
			if err := exportScene(dir, &s); err != nil {
				logger.Fatal("export failed", "scene", s.Name, "err", err)
			}
			logger.Info("exported", "scene", category+"_"+s.Name, "triangles", len(s.Context.Triangles))
		}
	}
}

func exportScene(dir string, s *testcases.Scene) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	err := writeFile(filepath.Join(dir, "scene.toml"), func(f *os.File) error {
		return mesh.WriteScene(f, s.Context)
	})
	if err != nil {
		return err
	}

	var entries []material.Entry
	for _, m := range s.Materials {
		e := material.Entry{ID: m.ID, Name: m.Name}
		for ch, img := range m.Textures {
			if img == nil {
				continue
			}
			name := fmt.Sprintf("%s_%d.png", m.Name, ch)
			if err := writePNG(filepath.Join(dir, name), img); err != nil {
				return err
			}
			e.Files[ch] = name
		}
		entries = append(entries, e)
	}
	err = writeFile(filepath.Join(dir, "library.toml"), func(f *os.File) error {
		return material.WriteManifest(f, entries)
	})
	if err != nil {
		return err
	}

	// Overrides are stored as part attributes, the same way an editor
	// snapshot records them.
	parts := make(map[string]map[string]string, len(s.Overrides))
	for part, mat := range s.Overrides {
		parts[part.String()] = map[string]string{"materialId": mat.String()}
	}
	err = writeFile(filepath.Join(dir, "overrides.toml"), func(f *os.File) error {
		return toml.NewEncoder(f).Encode(parts)
	})
	if err != nil {
		return err
	}

	cfg := bakeConfig{
		Resolution: s.Resolution,
		Scene:      "scene.toml",
		Library:    "library.toml",
		Overrides:  "overrides.toml",
		OutputDir:  "out",
	}
	return writeFile(filepath.Join(dir, "bake.toml"), func(f *os.File) error {
		return toml.NewEncoder(f).Encode(cfg)
	})
}

// bakeConfig is the subset of the atlasbake configuration needed to bake
// a scene.
type bakeConfig struct {
	Resolution int    `toml:"resolution"`
	Scene      string `toml:"scene"`
	Library    string `toml:"library"`
	Overrides  string `toml:"overrides"`
	OutputDir  string `toml:"output_dir"`
}

func writePNG(name string, img image.Image) error {
	return writeFile(name, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}
