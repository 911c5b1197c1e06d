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

// Small term guarding near-zero denominators in luma ratios and weight
// normalization.
const epsilon = 1e-7

func clamp01(f float32) float32 {
	return min(max(f, 0), 1)
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func floatToByte(v float32) uint8 {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(math32.Floor(v * 256))
}
