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
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/defringe/defringe/internal/plane"
)

// Renders the applied red and blue chroma corrections as a false-color
// diagnostic image. Hue encodes the direction of the correction in the
// red/blue chroma plane, value its magnitude scaled by gain; untouched
// pixels stay black
func FringeMap(kr, kb *plane.Plane, gain float32) *Image {
	img := NewImage(kr.Width, kr.Height)
	for i := range kr.Data {
		r, b := float64(kr.Data[i]), float64(kb.Data[i])
		mag := math.Sqrt(r*r+b*b) * float64(gain)
		if mag > 1 {
			mag = 1
		}
		hue := math.Atan2(b, r) * 180 / math.Pi
		if hue < 0 {
			hue += 360
		}
		c := colorful.Hsv(hue, 1, mag)
		img.Pix[3*i] = float32(c.R)
		img.Pix[3*i+1] = float32(c.G)
		img.Pix[3*i+2] = float32(c.B)
	}
	return img
}
