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
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"seehuhn.de/go/atlas"
)

// settle is the time to wait after the last change of an input file
// before a new bake starts.  Editors often write a file in several steps.
const settle = 250 * time.Millisecond

// watchInput bakes again whenever one of the files changes, until ctx is
// cancelled.
func watchInput(ctx context.Context, cfg *bakeConfig, bakeCfg atlas.Config, files []string, logger *log.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Directories are watched instead of the files themselves, so that
	// files replaced by a rename are still seen.
	watched := make(map[string]bool)
	var inputs map[string]bool
	update := func(files []string) {
		inputs = make(map[string]bool, len(files))
		for _, name := range files {
			abs, err := filepath.Abs(name)
			if err != nil {
				continue
			}
			inputs[abs] = true
			dir := filepath.Dir(abs)
			if watched[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				logger.Warn("cannot watch", "dir", dir, "err", err)
				continue
			}
			watched[dir] = true
		}
	}
	update(files)
	logger.Info("watching for changes", "files", len(files))

	var rebake <-chan time.Time
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil || !inputs[abs] {
				continue
			}
			logger.Debug("input changed", "file", e.Name, "op", e.Op)
			rebake = time.After(settle)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher", "err", err)

		case <-rebake:
			rebake = nil
			files, err := run(cfg, bakeCfg, logger)
			if err != nil {
				logger.Error("bake failed", "err", err)
			}
			update(files)

		case <-ctx.Done():
			return nil
		}
	}
}
