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

// Vec2 is a normalized coordinate in [0,1]².
type Vec2 struct {
	X float32
	Y float32
}

// rescale moves pos to [-1,1] space, scales it about the center, and moves it
// back. Factors above 1 crop (overscan), factors below 1 letterbox.
func rescale(pos Vec2, sx, sy float32) Vec2 {
	x := (pos.X*2 - 1) * sx
	y := (pos.Y*2 - 1) * sy
	return Vec2{x*0.5 + 0.5, y*0.5 + 0.5}
}

// snapScanlines rescales the coordinate so the simulated scanline pitch lands
// on whole output-pixel multiples. Non-integer pitches beat against the output
// grid and show up as moiré bands.
func (p *Pipeline) snapScanlines(pos Vec2, srcW, srcH, outW, outH int) Vec2 {
	mode := p.cfg.IntegerScale
	if mode == IntScaleOff {
		return pos
	}

	fx := float32(outW) / float32(srcW)
	fy := float32(outH) / float32(srcH)
	var ix, iy float32
	if mode == IntScaleFloorY || mode == IntScaleFloorXY {
		ix, iy = math32.Floor(fx), math32.Floor(fy)
	} else {
		ix, iy = math32.Ceil(fx), math32.Ceil(fy)
	}
	if ix < 1 {
		ix = 1
	}
	if iy < 1 {
		iy = 1
	}

	snapped := rescale(pos, fx/ix, fy/iy)
	if mode == IntScaleFloorY || mode == IntScaleCeilY {
		snapped.X = pos.X
	}
	return snapped
}

// warp applies the lens curvature remap. Each axis is pushed outward by an
// inverse square root of the other axis's distance from center, with the
// coupling controlled by CurveShape and the per-axis magnitude by
// CurvatureX/CurvatureY. Zero curvature is an exact identity.
func (p *Pipeline) warp(pos Vec2) Vec2 {
	shape := p.cfg.CurveShape
	x := pos.X*2 - 1
	y := pos.Y*2 - 1
	wx := x / math32.Sqrt(1-shape*y*y)
	wy := y / math32.Sqrt(1-shape*x*x)
	x = mix(x, wx, p.cfg.CurvatureX/shape)
	y = mix(y, wy, p.cfg.CurvatureY/shape)
	return Vec2{x*0.5 + 0.5, y*0.5 + 0.5}
}

// mapCoord turns an output coordinate into a source coordinate: integer scale
// snap (progressive sources only), overscan crop, then lens warp.
func (p *Pipeline) mapCoord(pos Vec2, progressive bool, srcW, srcH, outW, outH int) Vec2 {
	if progressive {
		pos = p.snapScanlines(pos, srcW, srcH, outW, outH)
	}
	pos = rescale(pos, 1+p.cfg.OverscanX/100, 1+p.cfg.OverscanY/100)
	return p.warp(pos)
}

// rowSplit separates a source coordinate into the scanline above the sampling
// position and the fractional offset below that scanline's center.
func rowSplit(y float32, srcH int) (row int, frac float32) {
	rowf := y*float32(srcH) - 0.5
	fl := math32.Floor(rowf)
	return int(fl), rowf - fl
}
