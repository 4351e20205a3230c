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
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDuplicateMaterial is returned when a manifest lists a material
	// twice.
	ErrDuplicateMaterial = errors.New("duplicate material")

	// ErrMissingID is returned for manifest entries without a material ID.
	ErrMissingID = errors.New("material without id")
)

// A library manifest is a TOML file listing the image files of every
// material, relative to the manifest's directory:
//
//	[[material]]
//	id = "0b4e..."
//	name = "rusty iron"
//	base_color = "iron/albedo.png"
//	normal = "iron/normal.png"
//	metalness = "iron/metal.tiff"
//	roughness = "iron/rough.webp"
//	ambient_occlusion = "iron/ao.bmp"
type manifest struct {
	Materials []manifestEntry `toml:"material"`
}

type manifestEntry struct {
	ID               uuid.UUID `toml:"id"`
	Name             string    `toml:"name"`
	BaseColor        string    `toml:"base_color,omitempty"`
	Normal           string    `toml:"normal,omitempty"`
	Metalness        string    `toml:"metalness,omitempty"`
	Roughness        string    `toml:"roughness,omitempty"`
	AmbientOcclusion string    `toml:"ambient_occlusion,omitempty"`
}

func (e *manifestEntry) files() [ChannelCount]string {
	return [ChannelCount]string{
		BaseColor:        e.BaseColor,
		Normal:           e.Normal,
		Metalness:        e.Metalness,
		Roughness:        e.Roughness,
		AmbientOcclusion: e.AmbientOcclusion,
	}
}

// FileLibrary is a Library backed by image files on disk.  All images
// are decoded when the library is loaded, so that a bake never touches
// the file system.
type FileLibrary struct {
	textures MapLibrary
	names    map[uuid.UUID]string

	// Files lists every image file used by the library.
	Files []string
}

// LoadLibrary reads a library manifest and decodes all images it
// references.  PNG, JPEG, BMP, TIFF and WebP images are supported.
func LoadLibrary(manifestPath string) (*FileLibrary, error) {
	fd, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadLibrary(fd, filepath.Dir(manifestPath))
}

// ReadLibrary reads a library manifest from r.  Relative image paths are
// interpreted relative to dir.
func ReadLibrary(r io.Reader, dir string) (*FileLibrary, error) {
	var m manifest
	if err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding material manifest: %w", err)
	}

	lib := &FileLibrary{
		textures: make(MapLibrary, len(m.Materials)),
		names:    make(map[uuid.UUID]string, len(m.Materials)),
	}
	for i := range m.Materials {
		entry := &m.Materials[i]
		if entry.ID == uuid.Nil {
			return nil, fmt.Errorf("material %d: %w", i, ErrMissingID)
		}
		if _, dup := lib.textures[entry.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMaterial, entry.ID)
		}

		var ts TextureSet
		for ch, name := range entry.files() {
			if name == "" {
				continue
			}
			if !filepath.IsAbs(name) {
				name = filepath.Join(dir, name)
			}
			img, err := decodeFile(name)
			if err != nil {
				return nil, fmt.Errorf("material %s, %s: %w", entry.ID, Channel(ch), err)
			}
			ts[ch] = img
			lib.Files = append(lib.Files, name)
		}
		lib.textures[entry.ID] = ts
		lib.names[entry.ID] = entry.Name
	}
	return lib, nil
}

// Entry describes one material for [WriteManifest].  The file names are
// relative to the manifest's directory; empty names mark absent maps.
type Entry struct {
	ID    uuid.UUID
	Name  string
	Files [ChannelCount]string
}

// WriteManifest writes a library manifest listing the given materials.
func WriteManifest(w io.Writer, entries []Entry) error {
	m := manifest{Materials: make([]manifestEntry, len(entries))}
	for i, e := range entries {
		m.Materials[i] = manifestEntry{
			ID:               e.ID,
			Name:             e.Name,
			BaseColor:        e.Files[BaseColor],
			Normal:           e.Files[Normal],
			Metalness:        e.Files[Metalness],
			Roughness:        e.Files[Roughness],
			AmbientOcclusion: e.Files[AmbientOcclusion],
		}
	}
	return toml.NewEncoder(w).Encode(m)
}

func decodeFile(name string) (image.Image, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

// Textures implements the [Library] interface.
func (lib *FileLibrary) Textures(id uuid.UUID) TextureSet {
	return lib.textures.Textures(id)
}

// Name returns the human readable name of a material.
func (lib *FileLibrary) Name(id uuid.UUID) string {
	return lib.names[id]
}

// Len returns the number of materials in the library.
func (lib *FileLibrary) Len() int {
	return len(lib.textures)
}
