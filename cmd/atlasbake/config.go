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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/atlas"
	"seehuhn.de/go/atlas/mesh"
)

var errNoScene = errors.New("no scene given")

// bakeConfig is the content of an atlasbake configuration file:
//
//	resolution = 2048
//	margin = 4
//	border_color = "#808080"
//	output_dir = "out"
//	library = "materials/library.toml"
//	scene = "car.toml"
//	overrides = "overrides.toml"
//	log_level = "debug"
//
// Relative paths are interpreted relative to the directory of the
// configuration file.
type bakeConfig struct {
	Resolution  int     `toml:"resolution"`
	Margin      float64 `toml:"margin"`
	BorderColor string  `toml:"border_color"`
	OutputDir   string  `toml:"output_dir"`
	Library     string  `toml:"library"`
	Scene       string  `toml:"scene"`
	Overrides   string  `toml:"overrides"`
	LogLevel    string  `toml:"log_level"`
}

func defaultBakeConfig() *bakeConfig {
	return &bakeConfig{
		Resolution:  atlas.DefaultResolution,
		Margin:      atlas.DefaultMargin,
		BorderColor: mesh.FormatColor(atlas.DefaultBorderColor),
		OutputDir:   ".",
		LogLevel:    "info",
	}
}

// loadConfig reads a configuration file.  Keys missing from the file keep
// their default values.
func loadConfig(name string) (*bakeConfig, error) {
	cfg := defaultBakeConfig()

	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	dec := toml.NewDecoder(fd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	dir := filepath.Dir(name)
	for _, p := range []*string{&cfg.OutputDir, &cfg.Library, &cfg.Scene, &cfg.Overrides} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// atlasConfig converts the file settings into the parameters of a bake.
func (c *bakeConfig) atlasConfig(logger *log.Logger) (atlas.Config, error) {
	if c.Scene == "" {
		return atlas.Config{}, errNoScene
	}
	border, err := mesh.ParseColor(c.BorderColor)
	if err != nil {
		return atlas.Config{}, fmt.Errorf("border_color: %w", err)
	}
	cfg := atlas.Config{
		Resolution:  c.Resolution,
		Margin:      c.Margin,
		BorderColor: border,
		Logger:      logger,
	}
	return cfg, cfg.Validate()
}
