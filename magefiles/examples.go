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

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const scenesDir = "testdata/scenes"

type Examples mg.Namespace

// Export writes all test scenes to testdata/scenes.
func (Examples) Export() error {
	_, err := executeCmd("go", withArgs("run", "./testcases/export", "-o", scenesDir), withStream())
	return err
}

// Bake bakes every exported scene into its own out/ directory.
func (Examples) Bake() error {
	mg.Deps(Examples.Export)

	dirs, err := sceneDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		config := filepath.Join(dir, "bake.toml")
		if _, err := executeCmd("go", withArgs("run", "./cmd/atlasbake", "-config", config)); err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}
	return nil
}

// Sheets draws the UV layout of every test scene as a PDF.
func (Examples) Sheets() error {
	dirs, err := sceneDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		name := filepath.Base(dir)
		out := filepath.Join(dir, "uvsheet.pdf")
		if _, err := executeCmd("go", withArgs("run", "./cmd/uvsheet", "-scene", name, "-o", out)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func sceneDirs() ([]string, error) {
	entries, err := os.ReadDir(scenesDir)
	if err != nil {
		return nil, fmt.Errorf("no exported scenes, run examples:export first: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, filepath.Join(scenesDir, e.Name()))
		}
	}
	return dirs, nil
}
