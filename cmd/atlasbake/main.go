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

// Command atlasbake bakes the texture atlas of a UV-unwrapped mesh.
//
// The inputs are described by a TOML configuration file, see the
// bakeConfig type.  The settings can also be given, or overridden, on the
// command line.  All images are written as PNG files to the output
// directory.  With -watch, atlasbake keeps running and bakes again
// whenever one of its input files changes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/atlas"
)

func main() {
	configFile := flag.String("config", "", "configuration file")
	scene := flag.String("scene", "", "scene file")
	library := flag.String("library", "", "material library manifest")
	overrides := flag.String("overrides", "", "material overrides")
	outDir := flag.String("o", "", "output directory")
	resolution := flag.Int("resolution", 0, "atlas resolution in pixels")
	margin := flag.Float64("margin", -1, "dilation margin in pixels")
	logLevel := flag.String("log", "", "log level (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "bake again when the input changes")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "atlasbake",
	})

	cfg := defaultBakeConfig()
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			logger.Fatal("cannot read configuration", "err", err)
		}
	}

	// flags take precedence over the configuration file
	setString(&cfg.Scene, *scene)
	setString(&cfg.Library, *library)
	setString(&cfg.Overrides, *overrides)
	setString(&cfg.OutputDir, *outDir)
	setString(&cfg.LogLevel, *logLevel)
	if *resolution > 0 {
		cfg.Resolution = *resolution
	}
	if *margin >= 0 {
		cfg.Margin = *margin
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.LogLevel)
	}
	logger.SetLevel(level)

	bakeCfg, err := cfg.atlasConfig(logger.WithPrefix("atlas"))
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	files, err := run(cfg, bakeCfg, logger)
	if !*watch {
		if err != nil {
			logger.Fatal("bake failed", "err", err)
		}
		return
	}
	if err != nil {
		logger.Error("bake failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchInput(ctx, cfg, bakeCfg, files, logger); err != nil {
		logger.Fatal("watch failed", "err", err)
	}
}

// run performs one complete bake.  It returns the list of input files,
// even if the bake itself fails.
func run(cfg *bakeConfig, bakeCfg atlas.Config, logger *log.Logger) ([]string, error) {
	in, err := readInput(cfg)
	if err != nil {
		return existing(cfg), err
	}

	job := atlas.NewJob(in.ctx, in.overrides, in.lib, bakeCfg)
	outcome := <-job.Start()
	if outcome.Err != nil {
		return in.files, outcome.Err
	}
	res := outcome.Result

	written, err := writeResult(cfg.OutputDir, res)
	if err != nil {
		return in.files, err
	}
	logger.Info("baked",
		"triangles", len(in.ctx.Triangles),
		"resolution", bakeCfg.Resolution,
		"metalness", res.HasMetalness,
		"roughness", res.HasRoughness,
		"ao", res.HasAmbientOcclusion,
		"time", res.Timings.Total.Round(time.Millisecond))
	for _, name := range written {
		logger.Debug("written", "file", name)
	}
	return in.files, nil
}

// existing returns the input files named in cfg which can be watched.
func existing(cfg *bakeConfig) []string {
	var res []string
	for _, name := range []string{cfg.Scene, cfg.Library, cfg.Overrides} {
		if name == "" {
			continue
		}
		if _, err := os.Stat(name); err == nil {
			res = append(res, name)
		}
	}
	return res
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
