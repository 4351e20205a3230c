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

// Command uvsheet draws the UV layout of a mesh as a PDF page.
// The dilated region of every triangle is shown in light gray, the
// triangle edges in black.  With -png, the page is also rendered to PNG
// using Ghostscript, for comparison with the border image of a bake.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/atlas"
	"seehuhn.de/go/atlas/mesh"
	"seehuhn.de/go/atlas/testcases"
)

func main() {
	sceneName := flag.String("scene", "", "name of a built-in test scene")
	sceneFile := flag.String("file", "", "scene file to read")
	resolution := flag.Int("resolution", atlas.DefaultResolution, "atlas resolution in pixels")
	margin := flag.Float64("margin", atlas.DefaultMargin, "dilation margin in pixels")
	out := flag.String("o", "uvsheet.pdf", "output file")
	renderPNG := flag.Bool("png", false, "also render the page to PNG")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "uvsheet"})

	ctx, res, err := loadScene(*sceneName, *sceneFile, *resolution)
	if err != nil {
		logger.Fatal("cannot load scene", "err", err)
	}
	if err := generatePDF(ctx, res, *margin, *out); err != nil {
		logger.Fatal("cannot write PDF", "err", err)
	}
	logger.Info("written", "file", *out, "triangles", len(ctx.Triangles), "resolution", res)

	if *renderPNG {
		pngPath := strings.TrimSuffix(*out, ".pdf") + ".png"
		if err := toPNG(*out, pngPath); err != nil {
			logger.Fatal("cannot render PNG", "err", err)
		}
		logger.Info("written", "file", pngPath)
	}
}

func loadScene(name, file string, resolution int) (*mesh.Context, int, error) {
	switch {
	case name != "" && file != "":
		return nil, 0, errors.New("use only one of -scene and -file")
	case name != "":
		s, ok := testcases.Find(name)
		if !ok {
			return nil, 0, fmt.Errorf("unknown scene %q", name)
		}
		return s.Context, s.Resolution, nil
	case file != "":
		fd, err := os.Open(file)
		if err != nil {
			return nil, 0, err
		}
		defer fd.Close()
		ctx, err := mesh.ReadScene(fd)
		return ctx, resolution, err
	default:
		return nil, 0, errors.New("missing -scene or -file")
	}
}

func generatePDF(ctx *mesh.Context, resolution int, margin float64, pdfPath string) error {
	size := float64(resolution)

	// one PDF point per atlas pixel
	paper := &pdf.Rectangle{URx: size, URy: size}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left, atlas images have the origin top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, size})

	page.SetFillColor(color.DeviceGray(0.85))
	for i := range ctx.Triangles {
		reg := atlas.Dilate(&ctx.Triangles[i], resolution, margin)
		// Fill the polygons one by one, so that opposite windings
		// cannot cancel.
		polygon(page, reg.Triangle[:])
		page.Fill()
		for _, poly := range reg.Outline {
			polygon(page, poly)
			page.Fill()
		}
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for i := range ctx.Triangles {
		reg := atlas.Dilate(&ctx.Triangles[i], resolution, 0)
		polygon(page, reg.Triangle[:])
	}
	page.Stroke()

	return page.Close()
}

type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

func polygon(page pathBuilder, pts []vec.Vec2) {
	if len(pts) == 0 {
		return
	}
	page.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		page.LineTo(p.X, p.Y)
	}
	page.ClosePath()
}

// toPNG renders the PDF at one pixel per point using Ghostscript.
func toPNG(pdfPath, pngPath string) error {
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
