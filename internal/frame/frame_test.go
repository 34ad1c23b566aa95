// Copyright (C) 2026 The defringe authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package frame

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/defringe/defringe/internal/plane"
)

func TestSplitLumaWeights(t *testing.T) {
	img := NewImage(2, 1)
	img.Pix = []float32{1, 0, 0, 0.5, 0.25, 0.75}
	r, g, b, y := img.Split(1)

	require.Equal(t, []float32{1, 0.5}, r.Data)
	require.Equal(t, []float32{0, 0.25}, g.Data)
	require.Equal(t, []float32{0, 0.75}, b.Data)
	require.InDelta(t, 0.299, y.Data[0], 1e-6)
	require.InDelta(t, 0.299*0.5+0.587*0.25+0.114*0.75, y.Data[1], 1e-6)
}

func TestReconstruct(t *testing.T) {
	g := plane.NewFromData(2, 1, []float32{0.4, 0.9})
	kr := plane.NewFromData(2, 1, []float32{0.2, 0.3})
	kb := plane.NewFromData(2, 1, []float32{-0.5, -0.1})
	img := Reconstruct(g, kr, kb)

	require.InDelta(t, 0.6, img.Pix[0], 1e-6)
	require.InDelta(t, 0.4, img.Pix[1], 1e-6)
	require.InDelta(t, 0, img.Pix[2], 1e-6) // 0.4-0.5 clamps to 0
	require.InDelta(t, 1, img.Pix[3], 1e-6) // 0.9+0.3 clamps to 1
	require.InDelta(t, 0.9, img.Pix[4], 1e-6)
	require.InDelta(t, 0.8, img.Pix[5], 1e-6)
}

func TestSplitReconstructRoundTrip(t *testing.T) {
	img := NewImage(5, 4)
	for i := range img.Pix {
		img.Pix[i] = float32(i%11) / 11
	}
	r, g, b, _ := img.Split(2)

	// chroma from the split channels rebuilds the original image
	kr := plane.New(5, 4)
	kb := plane.New(5, 4)
	for i := range g.Data {
		kr.Data[i] = r.Data[i] - g.Data[i]
		kb.Data[i] = b.Data[i] - g.Data[i]
	}
	out := Reconstruct(g, kr, kb)
	for i := range out.Pix {
		require.InDelta(t, img.Pix[i], out.Pix[i], 1e-6)
	}
}

func TestPadCrop(t *testing.T) {
	img := NewImage(3, 2)
	for i := range img.Pix {
		img.Pix[i] = float32(i) / 18
	}
	padded := img.Pad(4, 2)
	require.Equal(t, 11, padded.Width)
	require.Equal(t, 6, padded.Height)

	// corners replicate the nearest original pixel
	require.Equal(t, img.Pix[0], padded.Pix[0])
	last := 3 * (padded.Width*padded.Height - 1)
	require.Equal(t, img.Pix[len(img.Pix)-1], padded.Pix[last+2])

	cropped := padded.Crop(4, 2)
	require.Equal(t, img.Width, cropped.Width)
	require.Equal(t, img.Height, cropped.Height)
	require.Equal(t, img.Pix, cropped.Pix)
}

func TestQuantize8Rounding(t *testing.T) {
	tcs := []struct {
		in       float32
		expected uint8
	}{
		{0, 0},
		{1, 255},
		{-0.5, 0},
		{2.0, 255},
		{0.5, 128},
		{1.0 / 255, 1},
	}
	for _, tc := range tcs {
		if got := quantize8(tc.in, false, nil); got != tc.expected {
			t.Errorf("quantize8(%f)=%d; want %d", tc.in, got, tc.expected)
		}
	}
}

func TestWriteReadPNGRoundTrip(t *testing.T) {
	img := NewImage(8, 6)
	for i := range img.Pix {
		img.Pix[i] = float32(i%17) / 17
	}
	buf := &bytes.Buffer{}
	require.NoError(t, img.WritePNG(buf, WriteOptions{}))

	back, err := ReadImage(buf)
	require.NoError(t, err)
	require.Equal(t, img.Width, back.Width)
	require.Equal(t, img.Height, back.Height)
	for i := range img.Pix {
		// 8-bit quantization error at most half a step
		require.InDelta(t, img.Pix[i], back.Pix[i], 0.5/255+1e-6)
	}
}

func TestChromaStatsExact(t *testing.T) {
	k := plane.NewFromData(4, 1, []float32{0.1, -0.1, 0.3, -0.3})
	s := NewChromaStats(k, 100) // covers the whole plane, exact
	require.InDelta(t, 0, s.Mean, 1e-7)
	require.InDelta(t, 0.3, s.MaxAbs, 1e-7)
	wantStd := math.Sqrt((0.01 + 0.01 + 0.09 + 0.09) / 3)
	require.InDelta(t, wantStd, s.StdDev, 1e-6)
}

func TestFringeMapZeroChromaIsBlack(t *testing.T) {
	kr := plane.New(4, 4)
	kb := plane.New(4, 4)
	img := FringeMap(kr, kb, 4)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("zero chroma mapped to non-black sample %f at %d", v, i)
		}
	}
}
