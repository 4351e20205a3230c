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

package testcases

// All contains all scenes, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]Scene{
	"basic":     basicScenes,
	"channels":  channelScenes,
	"mirror":    mirrorScenes,
	"precision": precisionScenes,
	"large":     largeScenes,
}

// Find returns the scene with the given name.  The name may be prefixed
// by the category and an underscore.
func Find(name string) (Scene, bool) {
	for category, scenes := range All {
		for _, s := range scenes {
			if s.Name == name || category+"_"+s.Name == name {
				return s, true
			}
		}
	}
	return Scene{}, false
}
