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

// Package crtscan emulates the look of a CRT display for digitized
// low-resolution video frames: scanline beam shape, vertical sharpening,
// lens geometry and gamma-correct compositing, computed independently per
// output pixel.
package crtscan

import "github.com/chewxy/math32"

// Pixel is an RGB triple plus the auxiliary scalar carried between pipeline
// stages. On input A is the intensity hint produced by the preparation stage;
// on output it is the max-channel luma proxy consumed by bloom.
type Pixel struct {
	R float32
	G float32
	B float32
	A float32
}

// Color returns the RGB channels without the auxiliary scalar.
func (px Pixel) Color() FloatColor {
	return FloatColor{px.R, px.G, px.B}
}

// Source is the prior pipeline stage's image. Sample returns the pixel of
// scanline row at normalized horizontal position x; implementations clamp
// both coordinates to the source grid.
type Source interface {
	Size() (w, h int)
	Sample(x float32, row int) Pixel
}

// Metadata carries the per-frame scalars the preparation stage publishes:
// the encoding gamma of the source samples (as its reciprocal), whether the
// source is non-progressive, and any integer prescale already applied to the
// stored grid. It is constant for a frame.
type Metadata struct {
	InvGamma   float32
	Interlaced bool
	PrescaleX  int
	PrescaleY  int
}

// Fixed metadata texel positions. The preparation stage writes its scalars
// into the auxiliary channel of the first two texels of row 0: texel 0 holds
// the inverse source gamma, texel 1 holds the progressive indicator, where an
// auxiliary value below 0.5 signals a non-progressive source.
const (
	metaTexelGamma     = 0
	metaTexelInterlace = 1
)

// ReadMetadata decodes the documented metadata texels of an auxiliary sample
// set into an explicit record. Callers that already know the frame's
// properties can construct Metadata directly instead.
func ReadMetadata(aux Source) Metadata {
	w, _ := aux.Size()
	wf := float32(w)
	gamma := aux.Sample((metaTexelGamma+0.5)/wf, 0).A
	if gamma <= 0 {
		gamma = 1 / 2.4
	}
	ind := aux.Sample((metaTexelInterlace+0.5)/wf, 0).A
	return Metadata{
		InvGamma:   gamma,
		Interlaced: ind < 0.5,
		PrescaleX:  1,
		PrescaleY:  1,
	}
}

func (m Metadata) prescaleX() int {
	if m.PrescaleX < 1 {
		return 1
	}
	return m.PrescaleX
}

func (m Metadata) prescaleY() int {
	if m.PrescaleY < 1 {
		return 1
	}
	return m.PrescaleY
}

// Pipeline computes one output pixel at a time. It holds no mutable state:
// a single Pipeline may be shared by any number of goroutines.
type Pipeline struct {
	cfg Config

	// resampler bounds, invariant across pixels
	taps      int
	innerTaps int
	invSigma2 float32

	// deconvergence masks, invariant across pixels
	mask1 FloatColor
	mask2 FloatColor
}

// NewPipeline validates cfg and precomputes the per-configuration constants
// of the resampler window and the deconvergence masks.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}

	p.taps = int(math32.Ceil(2 * cfg.FilterSigma))
	if p.taps < 1 {
		p.taps = 1
	}
	p.innerTaps = (p.taps*2 + 2) / 3
	if p.innerTaps > p.taps {
		p.innerTaps = p.taps
	}
	p.invSigma2 = 1 / (2 * cfg.FilterSigma * cfg.FilterSigma)

	p.mask1, p.mask2 = deconvergenceMasks(cfg.VerticalMask)

	return p, nil
}

// Config returns a copy of the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Process computes the output pixel at normalized coordinate pos for an
// output grid of outW×outH pixels. The contract is total: any coordinate and
// any validated configuration yield a finite result with every channel in
// [0,1]. There is no failure path.
func (p *Pipeline) Process(pos Vec2, src Source, meta Metadata, outW, outH int) Pixel {
	srcW, srcH := src.Size()
	px := meta.prescaleX()
	py := meta.prescaleY()
	// Scanline geometry runs on the grid the source had before any integer
	// prescale; the prescaled texels only refine sampling.
	effW := srcW / px
	effH := srcH / py

	mapped := p.mapCoord(pos, !meta.Interlaced, effW, effH, outW, outH)
	row, frac := rowSplit(mapped.Y, effH)

	if meta.Interlaced {
		res := p.resampleVertical(src, mapped.X, row, frac, py)
		lin := res.PowF(1 / meta.InvGamma).Clamp01()
		return Pixel{lin.R, lin.G, lin.B, lin.MaxComponent()}
	}

	s1 := src.Sample(mapped.X, texelRow(row, py))
	s2 := src.Sample(mapped.X, texelRow(row+1, py))

	w1, w2 := p.beamWeights(frac, s1, s2)
	out := p.composite(s1.Color(), s2.Color(), w1, w2, meta.InvGamma)
	return Pixel{out.R, out.G, out.B, out.MaxComponent()}
}

// texelRow maps a scanline index on the pre-prescale grid to the stored row
// nearest that scanline's center.
func texelRow(row, prescale int) int {
	return row*prescale + prescale/2
}
