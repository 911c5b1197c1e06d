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

// resampleVertical reconstructs a continuous vertical signal from discrete
// scanlines for non-progressive sources. The kernel is a Gaussian with a
// constant bias subtracted, so the outer taps go negative and sharpen like an
// unsharp mask; an envelope that decays toward the window edge keeps the
// negative lobes from ringing freely, and a min/max clamp over the inner taps
// bounds whatever overshoot remains.
//
// Weights are summed signed and the result divided by that sum, so a constant
// column passes through unchanged (unit DC gain).
func (p *Pipeline) resampleVertical(src Source, x float32, row int, frac float32, prescale int) FloatColor {
	half := p.taps
	edgeSpan := float32(half + 1)

	var acc FloatColor
	var wsum float32
	lo := makeFloatColor(1)
	hi := makeFloatColor(0)

	for n := -half; n <= half+1; n++ {
		d := float32(n) - frac
		w := math32.Exp(-d*d*p.invSigma2) - p.cfg.SharpenStrength
		if w < 0 {
			edge := 1 - math32.Abs(d)/edgeSpan
			limit := p.cfg.SharpenStrength * math32.Pow(max(edge, 0), p.cfg.SharpenShape)
			if w < -limit {
				w = -limit
			}
		}

		s := src.Sample(x, texelRow(row+n, prescale)).Color()
		acc = acc.Add(s.MultF(w))
		wsum += w

		if n >= -p.innerTaps && n <= p.innerTaps+1 {
			lo = lo.Min(s)
			hi = hi.Max(s)
		}
	}

	if math32.Abs(wsum) < epsilon {
		wsum = epsilon
	}
	res := acc.DivF(wsum)

	bounded := res.Clamp(lo, hi)
	return lerpColor(res, bounded, p.cfg.RingingLimit).Clamp01()
}
