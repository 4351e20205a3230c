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

package atlas

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/log"
)

const (
	// DefaultResolution is the default side length of the atlas, in pixels.
	DefaultResolution = 1024

	// DefaultMargin is the default seam dilation, in pixels.
	DefaultMargin = 4

	// MaxResolution is the largest supported atlas side length.
	MaxResolution = 16384
)

// DefaultBorderColor is used for triangle edges in the border image.
var DefaultBorderColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// Config holds the parameters of a bake.  The values are copied when a
// [Job] is created and cannot change while the bake runs.
type Config struct {
	// Resolution is the side length of all atlas images.
	Resolution int

	// Margin is the distance, in pixels, by which triangles are
	// dilated.  Zero disables dilation.
	Margin float64

	// BorderColor is the color of triangle edges in the border image.
	BorderColor color.NRGBA

	// Logger receives diagnostic output.  If nil, a logger writing to
	// standard error is used.
	Logger *log.Logger
}

// DefaultConfig returns the default bake parameters.
func DefaultConfig() Config {
	return Config{
		Resolution:  DefaultResolution,
		Margin:      DefaultMargin,
		BorderColor: DefaultBorderColor,
	}
}

// Validate checks that a bake with these parameters can be performed.
func (c *Config) Validate() error {
	if c.Resolution <= 0 || c.Resolution > MaxResolution {
		return fmt.Errorf("atlas resolution %d: %w", c.Resolution, ErrAllocation)
	}
	if c.Margin < 0 || math.IsNaN(c.Margin) || math.IsInf(c.Margin, 0) {
		return fmt.Errorf("margin %g: %w", c.Margin, ErrInvalidMargin)
	}
	return nil
}

func (c *Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "atlas",
		Level:  log.InfoLevel,
	})
}
