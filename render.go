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

package crtscan

import (
	"context"
	"image"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// byteTable maps 8-bit channel values to normalized float32 once, instead of
// dividing per sample.
var byteTable [256]float32

func init() {
	for i := range byteTable {
		byteTable[i] = float32(i) / 255
	}
}

// imageSource adapts an image.Image into a Source. Samples keep the image's
// own encoding; the pipeline decodes them with the frame metadata's gamma.
// The intensity hint of each sample is its max channel.
type imageSource struct {
	w   int
	h   int
	pix []Pixel
}

// NewImageSource converts img into a Source. Arbitrary image types are
// normalized through an NRGBA raster first.
func NewImageSource(img image.Image) Source {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Copy(nrgba, image.Point{}, img, b, draw.Src, nil)
	}

	s := &imageSource{w: w, h: h, pix: make([]Pixel, w*h)}
	for y := 0; y < h; y++ {
		o := nrgba.PixOffset(0, y)
		for x := 0; x < w; x++ {
			r := byteTable[nrgba.Pix[o]]
			g := byteTable[nrgba.Pix[o+1]]
			b := byteTable[nrgba.Pix[o+2]]
			s.pix[y*w+x] = Pixel{r, g, b, max(r, max(g, b))}
			o += 4
		}
	}
	return s
}

func (s *imageSource) Size() (int, int) {
	return s.w, s.h
}

func (s *imageSource) Sample(x float32, row int) Pixel {
	col := int(math32.Floor(x * float32(s.w)))
	if col < 0 {
		col = 0
	} else if col >= s.w {
		col = s.w - 1
	}
	if row < 0 {
		row = 0
	} else if row >= s.h {
		row = s.h - 1
	}
	return s.pix[row*s.w+col]
}

// Render runs the pipeline over an outW×outH output grid. Rows are fanned out
// across all CPUs; each pixel is independent, so no synchronization beyond
// the final join is needed. A frame is produced in full or not at all: if ctx
// is cancelled mid-frame the partial raster is discarded and the context's
// error returned.
func Render(ctx context.Context, p *Pipeline, src Source, meta Metadata, outW, outH int) (*image.NRGBA, error) {
	srcW, srcH := src.Size()
	logger().Debug("render frame",
		"src_w", srcW, "src_h", srcH,
		"out_w", outW, "out_h", outH,
		"interlaced", meta.Interlaced)

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	invW := 1 / float32(outW)
	invH := 1 / float32(outH)

	for y := 0; y < outH; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			py := (float32(y) + 0.5) * invH
			for x := 0; x < outW; x++ {
				px := p.Process(Vec2{(float32(x) + 0.5) * invW, py}, src, meta, outW, outH)
				out.SetNRGBA(x, y, px.Color().NRGBA())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
