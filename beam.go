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

import "github.com/chewxy/math32"

// Exponent of the falloff blend that estimates local brightness before the
// beam weights themselves are known. Steep enough that each scanline's own
// intensity dominates near its center.
const brightSteep = 6

// beamWeights computes the per-channel blend weights of the two scanlines
// adjacent to a sampling position. frac is the vertical offset below the
// first scanline's center, in [0,1).
//
// The electron beam of a CRT spreads with intensity: bright scanlines are
// wide and flat, dark ones narrow and peaked. A brightness proxy blended from
// the two rows' intensity hints adapts the beam width before the selected
// shape curve is evaluated. The two scalar weights are renormalized to sum to
// at most one, then widened per channel against the scanline's chrominance so
// saturated edges keep their hue without exceeding the original peak channel.
func (p *Pipeline) beamWeights(frac float32, s1, s2 Pixel) (FloatColor, FloatColor) {
	a1 := math32.Pow(1-frac, brightSteep)
	a2 := math32.Pow(frac, brightSteep)
	bright := clamp01((s1.A*a1 + s2.A*a2) / (a1 + a2 + epsilon))

	wf1 := p.beamShape(frac, bright)
	wf2 := p.beamShape(1-frac, bright)

	if sum := wf1 + wf2; sum > 1 {
		wf1 /= sum
		wf2 /= sum
	}

	w1 := saturationWeights(s1.Color(), wf1, p.cfg.ScanSaturation)
	w2 := saturationWeights(s2.Color(), wf2, p.cfg.ScanSaturation)
	return w1, w2
}

// beamShape evaluates the selected beam response at distance d from a
// scanline center, for local brightness bright.
func (p *Pipeline) beamShape(d, bright float32) float32 {
	cfg := &p.cfg
	cubic := false
	var wid float32
	switch cfg.BeamShape {
	case BeamShapeNarrowed:
		// Small offsets see a beam narrowed by BeamBias, hardening the
		// scanline core without changing the tails.
		wid = mix(cfg.BeamMin, cfg.BeamMax, bright)
		wid *= mix(cfg.BeamBias, 1, clamp01(d*2))
	case BeamShapeCubic:
		wid = mix(cfg.BeamMin, cfg.BeamMax, math32.Pow(bright, cfg.BeamExponent))
		cubic = true
	default:
		wid = mix(cfg.BeamMin, cfg.BeamMax, bright)
	}

	x := d / wid
	if cubic {
		return math32.Exp2(-cfg.Falloff * x * x * x)
	}
	return math32.Exp2(-cfg.Falloff * x * x)
}

// saturationWeights spreads a scalar scanline weight across channels. Each
// channel is reduced toward its share of the fourth-power-normalized
// chrominance ratio, never above the scalar weight, so the peak channel's
// brightness survives while undersaturated channels stop bleeding across
// scanline edges.
func saturationWeights(c FloatColor, w float32, strength float32) FloatColor {
	mx := c.MaxComponent() + epsilon
	ratio := c.DivF(mx).Pow4()
	wv := lerpColor(makeFloatColor(w), ratio.MultF(w), strength)
	return wv.Min(makeFloatColor(w))
}
