/*
	crtscan

	Copyright (C) 2026 retrofilter

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	crtscan "github.com/retrofilter/crtscan"
)

const maxOutputPixels = 3840 * 2160

type options struct {
	output       string
	scale        int
	prescale     int
	interlaced   bool
	verbose      bool
	integerScale int
	overscan     float32
	curvature    float32
	beamShape    int
	verticalMask float32
	gammaOut     float32
}

func main() {
	opt := options{}

	root := &cobra.Command{
		Use:   "crtscan <image>",
		Short: "apply CRT display emulation to a low-resolution image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], opt)
		},
		SilenceUsage: true,
	}

	f := root.Flags()
	f.StringVarP(&opt.output, "output", "o", "out.png", "output PNG path")
	f.IntVarP(&opt.scale, "scale", "s", 4, "output scale factor")
	f.IntVar(&opt.prescale, "prescale", 1, "integer prescale of the source before filtering")
	f.BoolVar(&opt.interlaced, "interlaced", false, "treat the source as non-progressive")
	f.BoolVarP(&opt.verbose, "verbose", "v", false, "enable debug logging")
	f.IntVar(&opt.integerScale, "integer-scale", 0, "integer scale mode (0-4)")
	f.Float32Var(&opt.overscan, "overscan", 0, "overscan crop percentage")
	f.Float32Var(&opt.curvature, "curvature", 0, "lens curvature magnitude")
	f.IntVar(&opt.beamShape, "beam-shape", 0, "beam shape variant (0-2)")
	f.Float32Var(&opt.verticalMask, "vertical-mask", 0, "deconvergence strength (signed)")
	f.Float32Var(&opt.gammaOut, "gamma", 2.4, "output gamma")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, opt options) error {
	if opt.verbose {
		crtscan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := crtscan.DefaultConfig()
	cfg.IntegerScale = opt.integerScale
	cfg.OverscanX = opt.overscan
	cfg.OverscanY = opt.overscan
	cfg.CurvatureX = opt.curvature
	cfg.CurvatureY = opt.curvature
	cfg.BeamShape = opt.beamShape
	cfg.VerticalMask = opt.verticalMask
	cfg.GammaOut = opt.gammaOut

	p, err := crtscan.NewPipeline(cfg)
	if err != nil {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return errors.Wrap(err, "decode input")
	}

	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if opt.scale < 1 || opt.prescale < 1 {
		return errors.New("scale and prescale must be at least 1")
	}
	outW, outH := srcW*opt.scale, srcH*opt.scale
	if outW*outH > maxOutputPixels {
		return errors.Errorf("output %dx%d exceeds the supported size", outW, outH)
	}

	if opt.prescale > 1 {
		img = resize.Resize(uint(srcW*opt.prescale), uint(srcH*opt.prescale), img, resize.NearestNeighbor)
	}

	meta := crtscan.Metadata{
		InvGamma:   1 / cfg.GammaOut,
		Interlaced: opt.interlaced,
		PrescaleX:  opt.prescale,
		PrescaleY:  opt.prescale,
	}

	out, err := crtscan.Render(ctx, p, crtscan.NewImageSource(img), meta, outW, outH)
	if err != nil {
		return errors.Wrap(err, "render")
	}

	dst, err := os.Create(opt.output)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer dst.Close()

	if err := png.Encode(dst, out); err != nil {
		return errors.Wrap(err, "encode output")
	}
	fmt.Printf("%s: %dx%d -> %s: %dx%d\n", path, srcW, srcH, opt.output, outW, outH)
	return nil
}
