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

// deconvergenceMasks builds the per-channel multipliers emulating beam
// misalignment. The two scanlines pull green and magenta apart where their
// weights overlap; the sign of the strength selects which scanline favors
// which pair. Zero strength yields identity masks.
func deconvergenceMasks(strength float32) (FloatColor, FloatColor) {
	if strength == 0 {
		one := makeFloatColor(1)
		return one, one
	}
	a := math32.Abs(strength)
	green := makeFloatColor3(1-a, 1+a, 1-a)
	magenta := makeFloatColor3(1+a, 1-a, 1+a)
	if strength > 0 {
		return magenta, green
	}
	return green, magenta
}

// composite blends the two weighted scanline colors in decoded space and
// re-encodes the result. Source samples arrive encoded with the frame's
// gamma (invGamma is its reciprocal); the blend happens after decoding and
// the clamped sum is encoded with the configured output gamma. Full white in
// is full white out: the decode of 1 is 1, the weighted masked sum is capped
// at 1, and the encode of 1 is 1.
func (p *Pipeline) composite(c1, c2 FloatColor, w1, w2 FloatColor, invGamma float32) FloatColor {
	decode := 1 / invGamma
	d1 := c1.PowF(decode)
	d2 := c2.PowF(decode)

	sum := d1.Mult(w1).Mult(p.mask1).Add(d2.Mult(w2).Mult(p.mask2))
	sum = sum.Min(makeFloatColor(1)).Max(makeFloatColor(0))

	return sum.PowF(1 / p.cfg.GammaOut)
}
