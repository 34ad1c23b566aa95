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
	"github.com/defringe/defringe/internal/plane"
)

// ITU-R BT.601 luma weights
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// An RGB image with interleaved float32 samples, nominally in [0,1]
type Image struct {
	Width  int
	Height int
	Pix    []float32 // len 3*Width*Height, R,G,B interleaved, row-major
}

// Creates an image of the given size with zeroed samples
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, 3*width*height),
	}
}

// Decomposes the image into R, G, B channel planes and a derived luma
// plane Y = 0.299 R + 0.587 G + 0.114 B. Rows are split by parallel
// workers; each writes a disjoint output row
func (img *Image) Split(maxWorkers int) (r, g, b, y *plane.Plane) {
	r = plane.New(img.Width, img.Height)
	g = plane.New(img.Width, img.Height)
	b = plane.New(img.Width, img.Height)
	y = plane.New(img.Width, img.Height)

	limiter := make(chan bool, maxWorkers)
	for i := 0; i < img.Height; i++ {
		limiter <- true
		go func(i int) {
			defer func() { <-limiter }()
			rr, gr, br, yr := r.Row(i), g.Row(i), b.Row(i), y.Row(i)
			src := img.Pix[3*i*img.Width : 3*(i+1)*img.Width]
			for j := 0; j < img.Width; j++ {
				rv, gv, bv := src[3*j], src[3*j+1], src[3*j+2]
				rr[j], gr[j], br[j] = rv, gv, bv
				yr[j] = LumaR*rv + LumaG*gv + LumaB*bv
			}
		}(i)
	}
	for i := 0; i < cap(limiter); i++ { // wait for workers to finish
		limiter <- true
	}
	return r, g, b, y
}

// Reassembles an image from the green plane and the arbitrated red and
// blue chroma planes: R=G+Kr, B=G+Kb, G unchanged. Output samples are
// clamped to [0,1], honoring the normalized-range contract of the
// correction even though the blend itself does not enforce it
func Reconstruct(g, kr, kb *plane.Plane) *Image {
	img := NewImage(g.Width, g.Height)
	for i, gv := range g.Data {
		img.Pix[3*i] = clamp01(gv + kr.Data[i])
		img.Pix[3*i+1] = clamp01(gv)
		img.Pix[3*i+2] = clamp01(gv + kb.Data[i])
	}
	return img
}

// Returns a copy of the image extended by lHor columns on the left and
// right and lVer rows on the top and bottom, filled by edge replication.
// Padding before correction lets the filter windows cover the original
// image borders; crop with Crop afterwards
func (img *Image) Pad(lHor, lVer int) *Image {
	w, h := img.Width+2*lHor, img.Height+2*lVer
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		sy := clampInt(y-lVer, 0, img.Height-1)
		srcRow := img.Pix[3*sy*img.Width : 3*(sy+1)*img.Width]
		dstRow := out.Pix[3*y*w : 3*(y+1)*w]
		for x := 0; x < w; x++ {
			sx := clampInt(x-lHor, 0, img.Width-1)
			copy(dstRow[3*x:3*x+3], srcRow[3*sx:3*sx+3])
		}
	}
	return out
}

// Returns a copy of the image with lHor columns removed from the left and
// right and lVer rows from the top and bottom. Inverse of Pad
func (img *Image) Crop(lHor, lVer int) *Image {
	w, h := img.Width-2*lHor, img.Height-2*lVer
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		src := img.Pix[3*((y+lVer)*img.Width+lHor):]
		copy(out.Pix[3*y*w:3*(y+1)*w], src[:3*w])
	}
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
