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
	"image/color"

	"github.com/chewxy/math32"
)

// Three component color data with shader-like manipulation functions.
// Components are float32, matching the precision the emulated display
// math was written for.
type FloatColor struct {
	R float32
	G float32
	B float32
}

func (p FloatColor) Mult(c FloatColor) FloatColor {
	return FloatColor{p.R * c.R, p.G * c.G, p.B * c.B}
}

func (p FloatColor) MultF(f float32) FloatColor {
	return FloatColor{p.R * f, p.G * f, p.B * f}
}

func (p FloatColor) DivF(f float32) FloatColor {
	return FloatColor{p.R / f, p.G / f, p.B / f}
}

func (p FloatColor) Add(c FloatColor) FloatColor {
	return FloatColor{p.R + c.R, p.G + c.G, p.B + c.B}
}

func (p FloatColor) Sub(rhs FloatColor) FloatColor {
	return FloatColor{p.R - rhs.R, p.G - rhs.G, p.B - rhs.B}
}

func (p FloatColor) Min(c FloatColor) FloatColor {
	return FloatColor{min(p.R, c.R), min(p.G, c.G), min(p.B, c.B)}
}

func (p FloatColor) Max(c FloatColor) FloatColor {
	return FloatColor{max(p.R, c.R), max(p.G, c.G), max(p.B, c.B)}
}

func (p FloatColor) Clamp01() FloatColor {
	return FloatColor{clamp01(p.R), clamp01(p.G), clamp01(p.B)}
}

// Clamp limits every channel to the per-channel envelope [lo, hi].
func (p FloatColor) Clamp(lo, hi FloatColor) FloatColor {
	return p.Max(lo).Min(hi)
}

func (p FloatColor) PowF(e float32) FloatColor {
	return FloatColor{math32.Pow(p.R, e), math32.Pow(p.G, e), math32.Pow(p.B, e)}
}

func (p FloatColor) Pow4() FloatColor {
	sq := p.Mult(p)
	return sq.Mult(sq)
}

func (p FloatColor) MaxComponent() float32 {
	return max(p.R, max(p.G, p.B))
}

func (p FloatColor) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: floatToByte(p.R),
		G: floatToByte(p.G),
		B: floatToByte(p.B),
		A: 255,
	}
}

func lerpColor(l, r FloatColor, t float32) FloatColor {
	return l.Add(r.Sub(l).MultF(t))
}

func makeFloatColor(v float32) FloatColor {
	return FloatColor{v, v, v}
}

func makeFloatColor3(r, g, b float32) FloatColor {
	return FloatColor{r, g, b}
}
