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
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// All compiles every package and command.
func (Build) All() error {
	_, err := executeCmd("go", withArgs("build", "./..."), withStream())
	return err
}

// Tools installs atlasbake and uvsheet.
func (Build) Tools() error {
	mg.Deps(Build.All)
	_, err := executeCmd("go", withArgs("install", "./cmd/atlasbake", "./cmd/uvsheet"), withStream())
	return err
}

type Test mg.Namespace

// Unit runs all tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Short runs the tests, skipping the large scenes.
func (Test) Short() error {
	_, err := executeCmd("go", withArgs("test", "-short", "./..."), withStream())
	return err
}

// Bench compares the rasterizer with x/image/vector and times complete
// bakes.
func (Test) Bench() error {
	_, err := executeCmd("go", withArgs("test", "-run=^$", "-bench=.", "./", "./raster"), withStream())
	return err
}
