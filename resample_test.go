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
	"testing"

	"github.com/stretchr/testify/assert"
)

// columnSource is a single-column image defined by a per-row color function.
type columnSource struct {
	h      int
	colors func(row int) FloatColor
}

func (s *columnSource) Size() (int, int) { return 1, s.h }

func (s *columnSource) Sample(_ float32, row int) Pixel {
	if row < 0 {
		row = 0
	} else if row >= s.h {
		row = s.h - 1
	}
	c := s.colors(row)
	return Pixel{c.R, c.G, c.B, c.MaxComponent()}
}

func stepColumn(at int, lo, hi float32) *columnSource {
	return &columnSource{h: 16, colors: func(row int) FloatColor {
		if row < at {
			return makeFloatColor(lo)
		}
		return makeFloatColor(hi)
	}}
}

func TestResampleUnitDCGain(t *testing.T) {
	src := &columnSource{h: 16, colors: func(int) FloatColor { return makeFloatColor(0.5) }}

	for _, sigma := range []float32{0.5, 0.9, 2.0} {
		cfg := DefaultConfig()
		cfg.FilterSigma = sigma
		cfg.RingingLimit = 1
		p := mustPipeline(t, cfg)

		for _, frac := range []float32{0, 0.25, 0.5, 0.9} {
			got := p.resampleVertical(src, 0.5, 8, frac, 1)
			// Fully envelope-clamped, a constant column is reproduced exactly.
			assert.Equal(t, makeFloatColor(0.5), got, "sigma %v frac %v", sigma, frac)
		}
	}
}

func TestResampleDCGainUnclamped(t *testing.T) {
	src := &columnSource{h: 16, colors: func(int) FloatColor { return makeFloatColor(0.7) }}

	cfg := DefaultConfig()
	cfg.RingingLimit = 0
	p := mustPipeline(t, cfg)

	got := p.resampleVertical(src, 0.5, 8, 0.3, 1)
	assert.InDelta(t, 0.7, got.R, 1e-5)
	assert.InDelta(t, 0.7, got.G, 1e-5)
	assert.InDelta(t, 0.7, got.B, 1e-5)
}

func TestResampleRingingLimited(t *testing.T) {
	// With the limiter at maximum the result may never leave the local
	// min/max envelope of the sampled window.
	src := stepColumn(8, 0.2, 0.8)

	cfg := DefaultConfig()
	cfg.FilterSigma = 0.5
	cfg.SharpenStrength = 0.3
	cfg.RingingLimit = 1
	p := mustPipeline(t, cfg)

	for row := 4; row < 12; row++ {
		for _, frac := range []float32{0, 0.1, 0.5, 0.9} {
			got := p.resampleVertical(src, 0.5, row, frac, 1)
			for _, v := range []float32{got.R, got.G, got.B} {
				assert.GreaterOrEqual(t, v, float32(0.2)-1e-6, "row %d frac %v", row, frac)
				assert.LessOrEqual(t, v, float32(0.8)+1e-6, "row %d frac %v", row, frac)
			}
		}
	}
}

func TestResampleOvershootWithoutLimiter(t *testing.T) {
	// Same configuration without the limiter rings below the dark side of
	// the step; this is the artifact the envelope exists to bound.
	src := stepColumn(2, 0.2, 0.8)

	cfg := DefaultConfig()
	cfg.FilterSigma = 0.5
	cfg.SharpenStrength = 0.3
	cfg.RingingLimit = 0
	p := mustPipeline(t, cfg)

	got := p.resampleVertical(src, 0.5, 1, 0.1, 1)
	assert.Less(t, got.R, float32(0.2))
}

func TestResampleOutputClamped(t *testing.T) {
	src := stepColumn(8, 0, 1)

	cfg := DefaultConfig()
	cfg.SharpenStrength = 0.3
	cfg.RingingLimit = 0
	p := mustPipeline(t, cfg)

	for row := 0; row < 16; row++ {
		got := p.resampleVertical(src, 0.5, row, 0.5, 1)
		for _, v := range []float32{got.R, got.G, got.B} {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.LessOrEqual(t, v, float32(1))
		}
	}
}
