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
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestRenderFlatFrame(t *testing.T) {
	img := flatImage(64, 48, color.NRGBA{128, 128, 128, 255})
	src := NewImageSource(img)
	p := mustPipeline(t, DefaultConfig())
	meta := Metadata{InvGamma: 1 / defGammaOut, PrescaleX: 1, PrescaleY: 1}

	out, err := Render(context.Background(), p, src, meta, 256, 192)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 256, 192), out.Rect)

	// A flat field through paired gamma stages stays flat.
	first := out.NRGBAAt(0, 0)
	for y := 0; y < 192; y += 7 {
		for x := 0; x < 256; x += 11 {
			assert.Equal(t, first, out.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.InDelta(t, 128, float64(first.R), 1)
	assert.Equal(t, uint8(255), first.A)
}

func TestRenderCancelled(t *testing.T) {
	img := flatImage(64, 48, color.NRGBA{200, 50, 30, 255})
	src := NewImageSource(img)
	p := mustPipeline(t, DefaultConfig())
	meta := Metadata{InvGamma: 1 / defGammaOut, PrescaleX: 1, PrescaleY: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Render(ctx, p, src, meta, 256, 192)
	assert.Nil(t, out, "a cancelled frame has no partial meaning")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewImageSourceSamples(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(2, 1, color.NRGBA{255, 0, 51, 255})
	src := NewImageSource(img)

	w, h := src.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)

	px := src.Sample(2.5/4, 1)
	assert.InDelta(t, 1.0, px.R, 1e-6)
	assert.InDelta(t, 0.0, px.G, 1e-6)
	assert.InDelta(t, 0.2, px.B, 1e-6)
	assert.InDelta(t, 1.0, px.A, 1e-6, "intensity hint is the max channel")
}

func TestNewImageSourceClampsOutside(t *testing.T) {
	img := flatImage(4, 4, color.NRGBA{10, 20, 30, 255})
	src := NewImageSource(img)

	inside := src.Sample(0.5, 0)
	assert.Equal(t, inside, src.Sample(-0.5, -3))
	assert.Equal(t, inside, src.Sample(1.5, 99))
}

func TestNewImageSourceOffsetBounds(t *testing.T) {
	// Sub-images with a non-zero origin must be normalized, not indexed raw.
	base := flatImage(8, 8, color.NRGBA{0, 0, 0, 255})
	base.SetNRGBA(4, 4, color.NRGBA{255, 255, 255, 255})
	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.NRGBA)

	src := NewImageSource(sub)
	w, h := src.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
	assert.InDelta(t, 1.0, src.Sample(0.1, 0).R, 1e-6)
}
