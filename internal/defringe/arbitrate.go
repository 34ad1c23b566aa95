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

package defringe

import (
	"github.com/defringe/defringe/internal/plane"
)

// Arbitrates between the TI and FC chroma estimates of a merged filter
// result, returning the final chroma plane for the channel.
//
// A local contrast measure is recomputed per axis on a bias-adjusted
// signal: max candidates are lowered and min candidates raised by
// beta*|X-G|, so strong channel/green disagreement narrows the envelope.
// The axes merge by maximum. Per pixel, the contrast is normalized by the
// merged envelope range clamped into [gamma2, gamma1], yielding a blend
// weight in [0,1]: low contrast trusts the conservative TI estimate, high
// contrast the stronger FC correction
func arbitrate(m *filterResult, x, g *plane.Plane, lHor, lVer int, beta, gamma1, gamma2 float32, maxWorkers int) *plane.Plane {
	ch := biasedContrast(x, g, lHor, beta, maxWorkers)
	cv := biasedContrast(x.Transposed(), g.Transposed(), lVer, beta, maxWorkers).Transposed()

	out := plane.New(x.Width, x.Height)
	for i := range out.Data {
		c := ch.Data[i]
		if cv.Data[i] > c {
			c = cv.Data[i]
		}
		if c < 0 {
			c = 0
		}
		rng := m.XMax.Data[i] - m.XMin.Data[i]
		if rng < gamma2 {
			rng = gamma2
		}
		if rng > gamma1 {
			rng = gamma1
		}
		alpha := c / rng
		if alpha > 1 {
			alpha = 1
		}
		out.Data[i] = (1-alpha)*m.KTI.Data[i] + alpha*m.K.Data[i]
	}
	return out
}

// Computes the bias-adjusted local contrast along the rows of x, with
// half-window l. Border columns where the window does not fit keep zero
// contrast, so arbitration falls back to the TI estimate there
func biasedContrast(x, g *plane.Plane, l int, beta float32, maxWorkers int) *plane.Plane {
	res := plane.New(x.Width, x.Height)
	limiter := make(chan bool, maxWorkers)
	for i := 0; i < x.Height; i++ {
		limiter <- true
		go func(i int) {
			defer func() { <-limiter }()
			biasedContrastRow(res.Row(i), x.Row(i), g.Row(i), l, beta)
		}(i)
	}
	for i := 0; i < cap(limiter); i++ { // wait for workers to finish
		limiter <- true
	}
	return res
}

// Computes contrast for the interior columns of one row. The envelope
// pairing rule matches the filtering stage, applied to separate candidate
// signals for the maxima (samples lowered by the bias) and the minima
// (samples raised by the bias)
func biasedContrastRow(cr, xr, gr []float32, l int, beta float32) {
	n := len(xr)
	hiCand := make([]float32, n)
	loCand := make([]float32, n)
	for j := 0; j < n; j++ {
		bias := beta * abs32(xr[j]-gr[j])
		hiCand[j] = xr[j] - bias
		loCand[j] = xr[j] + bias
	}

	for j := l; j < n-l; j++ {
		wMax, wMin := hiCand[j], loCand[j]
		for k := j - l; k < j; k++ {
			if hiCand[k] > wMax {
				wMax = hiCand[k]
			}
			if loCand[k] < wMin {
				wMin = loCand[k]
			}
		}
		eMax, eMin := hiCand[j], loCand[j]
		for k := j + 1; k <= j+l; k++ {
			if hiCand[k] > eMax {
				eMax = hiCand[k]
			}
			if loCand[k] < eMin {
				eMin = loCand[k]
			}
		}
		if eMax-wMin >= wMax-eMin {
			cr[j] = eMax - wMin
		} else {
			cr[j] = wMax - eMin
		}
	}
}
