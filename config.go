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
	"github.com/pkg/errors"
)

// Integer scale modes. The odd modes snap only the vertical axis, which is
// usually enough to keep the scanline pitch moiré-free without disturbing
// horizontal geometry.
const (
	IntScaleOff = iota
	IntScaleFloorY
	IntScaleFloorXY
	IntScaleCeilY
	IntScaleCeilXY
)

// Beam shape selectors.
const (
	BeamShapeGaussian = iota
	BeamShapeNarrowed
	BeamShapeCubic
)

// Config is the full numeric parameter set for the pipeline. It is fixed for
// the pipeline's lifetime; NewPipeline copies it and never mutates it.
type Config struct {
	// geometry
	IntegerScale int
	OverscanX    float32
	OverscanY    float32
	CurvatureX   float32
	CurvatureY   float32
	CurveShape   float32

	// vertical resampler (non-progressive sources)
	FilterSigma     float32
	SharpenStrength float32
	RingingLimit    float32
	SharpenShape    float32

	// scanline beam
	BeamShape      int
	BeamMin        float32
	BeamMax        float32
	BeamExponent   float32
	BeamBias       float32
	Falloff        float32
	ScanSaturation float32

	// compositor
	VerticalMask float32
	GammaOut     float32
}

const (
	defIntegerScale    = IntScaleOff
	defOverscanX       = 0.0
	defOverscanY       = 0.0
	defCurvatureX      = 0.0
	defCurvatureY      = 0.0
	defCurveShape      = 0.25
	defFilterSigma     = 0.9
	defSharpenStrength = 0.1
	defRingingLimit    = 0.8
	defSharpenShape    = 1.5
	defBeamShape       = BeamShapeGaussian
	defBeamMin         = 0.65
	defBeamMax         = 1.0
	defBeamExponent    = 0.6
	defBeamBias        = 0.8
	defFalloff         = 2.0
	defScanSaturation  = 0.5
	defVerticalMask    = 0.0
	defGammaOut        = 2.4
)

// DefaultConfig returns the parameter set the defaults column of Params
// describes.
func DefaultConfig() Config {
	return Config{
		IntegerScale:    defIntegerScale,
		OverscanX:       defOverscanX,
		OverscanY:       defOverscanY,
		CurvatureX:      defCurvatureX,
		CurvatureY:      defCurvatureY,
		CurveShape:      defCurveShape,
		FilterSigma:     defFilterSigma,
		SharpenStrength: defSharpenStrength,
		RingingLimit:    defRingingLimit,
		SharpenShape:    defSharpenShape,
		BeamShape:       defBeamShape,
		BeamMin:         defBeamMin,
		BeamMax:         defBeamMax,
		BeamExponent:    defBeamExponent,
		BeamBias:        defBeamBias,
		Falloff:         defFalloff,
		ScanSaturation:  defScanSaturation,
		VerticalMask:    defVerticalMask,
		GammaOut:        defGammaOut,
	}
}

// ParamSpec describes one configuration parameter: its valid range and the
// step granularity a UI should offer. Range and step are data, not compiled
// branches, so front ends can build controls from the table directly.
type ParamSpec struct {
	Name    string
	Default float32
	Min     float32
	Max     float32
	Step    float32
}

// Params lists every parameter of Config in declaration order.
func Params() []ParamSpec {
	return []ParamSpec{
		{"integer_scale", defIntegerScale, 0, 4, 1},
		{"overscan_x", defOverscanX, -10, 10, 0.25},
		{"overscan_y", defOverscanY, -10, 10, 0.25},
		{"curvature_x", defCurvatureX, 0, 0.25, 0.01},
		{"curvature_y", defCurvatureY, 0, 0.25, 0.01},
		{"curve_shape", defCurveShape, 0.05, 0.6, 0.05},
		{"filter_sigma", defFilterSigma, 0.3, 3, 0.05},
		{"sharpen_strength", defSharpenStrength, 0, 0.3, 0.01},
		{"ringing_limit", defRingingLimit, 0, 1, 0.05},
		{"sharpen_shape", defSharpenShape, 0.5, 4, 0.25},
		{"beam_shape", defBeamShape, 0, 2, 1},
		{"beam_min", defBeamMin, 0.3, 1, 0.05},
		{"beam_max", defBeamMax, 0.5, 1.5, 0.05},
		{"beam_exponent", defBeamExponent, 0.1, 2, 0.05},
		{"beam_bias", defBeamBias, 0.5, 1, 0.05},
		{"falloff", defFalloff, 1, 6, 0.25},
		{"scan_saturation", defScanSaturation, 0, 1, 0.05},
		{"vertical_mask", defVerticalMask, -0.5, 0.5, 0.01},
		{"gamma_out", defGammaOut, 1.8, 3, 0.05},
	}
}

func (c Config) values() []float32 {
	return []float32{
		float32(c.IntegerScale),
		c.OverscanX,
		c.OverscanY,
		c.CurvatureX,
		c.CurvatureY,
		c.CurveShape,
		c.FilterSigma,
		c.SharpenStrength,
		c.RingingLimit,
		c.SharpenShape,
		float32(c.BeamShape),
		c.BeamMin,
		c.BeamMax,
		c.BeamExponent,
		c.BeamBias,
		c.Falloff,
		c.ScanSaturation,
		c.VerticalMask,
		c.GammaOut,
	}
}

// Validate checks every parameter against its documented range. The per-pixel
// core assumes a validated configuration and performs no range checks of its
// own; a CurveShape of zero in particular would divide by zero in the lens
// warp.
func (c Config) Validate() error {
	specs := Params()
	vals := c.values()
	for i, s := range specs {
		v := vals[i]
		if v < s.Min || v > s.Max {
			return errors.Errorf("config: %s = %v out of range [%v, %v]", s.Name, v, s.Min, s.Max)
		}
	}
	return nil
}
