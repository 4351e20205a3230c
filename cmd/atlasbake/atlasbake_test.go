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
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/atlas"
	"seehuhn.de/go/atlas/material"
	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/testcases"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bake.toml")
	writeFile(t, name, `
resolution = 256
scene = "scenes/car.toml"
output_dir = "/tmp/out"
`)

	cfg, err := loadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Resolution != 256 {
		t.Errorf("resolution: expected 256, got %d", cfg.Resolution)
	}
	if cfg.Margin != atlas.DefaultMargin {
		t.Errorf("margin: expected default, got %g", cfg.Margin)
	}
	if want := filepath.Join(dir, "scenes", "car.toml"); cfg.Scene != want {
		t.Errorf("scene: expected %q, got %q", want, cfg.Scene)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("absolute output directory changed to %q", cfg.OutputDir)
	}
	if cfg.Library != "" {
		t.Errorf("unexpected library %q", cfg.Library)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bake.toml")
	writeFile(t, name, "resolutoin = 256\n")
	if _, err := loadConfig(name); err == nil {
		t.Error("misspelled key accepted")
	}
}

func TestAtlasConfig(t *testing.T) {
	logger := log.New(io.Discard)

	cfg := defaultBakeConfig()
	if _, err := cfg.atlasConfig(logger); !errors.Is(err, errNoScene) {
		t.Errorf("expected errNoScene, got %v", err)
	}

	cfg.Scene = "scene.toml"
	cfg.BorderColor = "grey"
	if _, err := cfg.atlasConfig(logger); !errors.Is(err, mesh.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}

	cfg.BorderColor = "#102030"
	cfg.Margin = -2
	if _, err := cfg.atlasConfig(logger); !errors.Is(err, atlas.ErrInvalidMargin) {
		t.Errorf("expected ErrInvalidMargin, got %v", err)
	}

	cfg.Margin = 2
	ac, err := cfg.atlasConfig(logger)
	if err != nil {
		t.Fatal(err)
	}
	if ac.BorderColor.R != 0x10 || ac.BorderColor.B != 0x30 || ac.Margin != 2 {
		t.Errorf("unexpected config %+v", ac)
	}
}

// TestRun bakes a scene from files on disk.
func TestRun(t *testing.T) {
	s, ok := testcases.Find("mirror_override")
	if !ok {
		t.Fatal("scene not found")
	}
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := mesh.WriteScene(&buf, s.Context); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "scene.toml"), buf.String())

	var entries []material.Entry
	for _, m := range s.Materials {
		e := material.Entry{ID: m.ID, Name: m.Name}
		for ch, img := range m.Textures {
			if img == nil {
				continue
			}
			e.Files[ch] = fmt.Sprintf("%s_%d.png", m.Name, ch)
			fd, err := os.Create(filepath.Join(dir, e.Files[ch]))
			if err != nil {
				t.Fatal(err)
			}
			if err := png.Encode(fd, img); err != nil {
				t.Fatal(err)
			}
			fd.Close()
		}
		entries = append(entries, e)
	}
	buf.Reset()
	if err := material.WriteManifest(&buf, entries); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "library.toml"), buf.String())

	parts := map[string]map[string]string{}
	for part, mat := range s.Overrides {
		parts[part.String()] = map[string]string{"materialId": mat.String()}
	}
	buf.Reset()
	if err := toml.NewEncoder(&buf).Encode(parts); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "overrides.toml"), buf.String())

	cfg := defaultBakeConfig()
	cfg.Resolution = s.Resolution
	cfg.Scene = filepath.Join(dir, "scene.toml")
	cfg.Library = filepath.Join(dir, "library.toml")
	cfg.Overrides = filepath.Join(dir, "overrides.toml")
	cfg.OutputDir = filepath.Join(dir, "out")
	logger := log.New(io.Discard)
	ac, err := cfg.atlasConfig(logger)
	if err != nil {
		t.Fatal(err)
	}

	files, err := run(cfg, ac, logger)
	if err != nil {
		t.Fatal(err)
	}
	// scene, manifest, three images, overrides
	if len(files) != 6 {
		t.Errorf("expected 6 input files, got %d: %v", len(files), files)
	}

	for _, name := range []string{"color.png", "final.png", "guide.png", "border.png", "packed.png", "mesh.toml"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "normal.png")); !os.IsNotExist(err) {
		t.Error("normal map written for a scene without normal maps")
	}

	fd, err := os.Open(filepath.Join(cfg.OutputDir, "color.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	img, err := png.Decode(fd)
	if err != nil {
		t.Fatal(err)
	}
	// the override replaces the red paint of both wings by blue carbon
	r, g, b, _ := img.At(48, 32).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("right wing: expected blue, got %04x %04x %04x", r, g, b)
	}
}
