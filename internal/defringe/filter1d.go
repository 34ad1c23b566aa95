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

// Guards divisions against zero denominators
const eps = 1e-8

// Result of one directional TI+FC filtering pass over a channel plane.
// K holds the false-color filtered chroma, KTI the transient-improvement
// chroma at the window center, XMax/XMin the selected local envelope.
// Values are only computed on the interior [l, width-l) of each row;
// border columns carry zero chroma and the unfiltered channel value as
// envelope, so no correction is ever applied there
type filterResult struct {
	K    *plane.Plane
	KTI  *plane.Plane
	XMax *plane.Plane
	XMin *plane.Plane
}

// Allocates a result for the given channel plane, with the border policy
// above already established: chroma planes are zeroed, envelope planes
// start out as copies of the channel itself
func newFilterResult(x *plane.Plane) *filterResult {
	return &filterResult{
		K:    plane.New(x.Width, x.Height),
		KTI:  plane.New(x.Width, x.Height),
		XMax: x.Clone(),
		XMin: x.Clone(),
	}
}

// Returns the result with all four planes transposed. Used to bring a
// vertical pass back into row-major orientation
func (r *filterResult) transposed() *filterResult {
	return &filterResult{
		K:    r.K.Transposed(),
		KTI:  r.KTI.Transposed(),
		XMax: r.XMax.Transposed(),
		XMin: r.XMin.Transposed(),
	}
}

// Runs the TI+FC filter along the rows of channel plane x against green
// plane g and luma plane y, with half-window l. Rows are processed by
// parallel workers; each row only reads the shared input planes and writes
// its own output row, so no locking is needed
func filterPlane(x, g, y *plane.Plane, l int, rho [3]float32, alphaX, tau float32, maxWorkers int) *filterResult {
	res := newFilterResult(x)
	limiter := make(chan bool, maxWorkers)
	for i := 0; i < x.Height; i++ {
		limiter <- true
		go func(i int) {
			defer func() { <-limiter }()
			filterRow(res.K.Row(i), res.KTI.Row(i), res.XMax.Row(i), res.XMin.Row(i),
				x.Row(i), g.Row(i), y.Row(i), l, rho, alphaX, tau)
		}(i)
	}
	for i := 0; i < cap(limiter); i++ { // wait for workers to finish
		limiter <- true
	}
	return res
}

// Filters a single row. kr, ktir, xmaxr, xminr receive the outputs for
// interior columns [l, len(xr)-l); border columns are left at the values
// newFilterResult established
func filterRow(kr, ktir, xmaxr, xminr, xr, gr, yr []float32, l int, rho [3]float32, alphaX, tau float32) {
	n := len(xr)
	gradX := rowGradient(xr)
	gradG := rowGradient(gr)

	for j := l; j < n-l; j++ {
		xMax, xMin := envelope(xr, j, l)
		xmaxr[j], xminr[j] = xMax, xMin

		// the center decides between the bright and dark fringe hypothesis
		bright := xr[j] > gr[j]
		ktiC := tiChroma(xr[j], gr[j], xMax, xMin, rho, bright)
		ktir[j] = ktiC

		// accumulate center-clipped chroma over all offsets, in fixed
		// left-to-right order so reruns are bit-identical
		num, den := float32(0), float32(0)
		for k := j - l; k <= j+l; k++ {
			kti := tiChroma(xr[k], gr[k], xMax, xMin, rho, bright)

			w := float32(0)
			if kti*ktiC >= 0 || abs32(kti) < tau {
				w = 1
			}
			gx := abs32(gradX[k])
			if ax := alphaX * abs32(kti); ax > gx {
				gx = ax
			}
			w /= abs32(gradG[k]) + gx + abs32(yr[j]-yr[k]) + eps

			num += w * clipChroma(kti, ktiC)
			den += w
		}
		kr[j] = num / (den + eps)
	}
}

// Selects the local max/min envelope around column j with half-window l.
// East and West half-windows, each including the center, are scanned
// separately, then the pairing capturing the larger discontinuity wins:
// (East-max, West-min) if that spread is at least as large as
// (West-max, East-min), else the latter. An edge straddling the center
// is the signature of a fringe transition
func envelope(row []float32, j, l int) (max, min float32) {
	wMax, wMin := row[j], row[j]
	for k := j - l; k < j; k++ {
		v := row[k]
		if v > wMax {
			wMax = v
		}
		if v < wMin {
			wMin = v
		}
	}
	eMax, eMin := row[j], row[j]
	for k := j + 1; k <= j+l; k++ {
		v := row[k]
		if v > eMax {
			eMax = v
		}
		if v < eMin {
			eMin = v
		}
	}
	if eMax-wMin >= wMax-eMin {
		return eMax, wMin
	}
	return wMax, eMin
}

// Transient improvement at one window offset: a linear prefilter of the
// envelope and the local sample, clipped into the admissible range for
// the active fringe hypothesis, converted to chroma against green.
// Under the bright hypothesis the reconstruction may not drop below
// green or the envelope minimum, nor exceed the sample; the dark
// hypothesis mirrors the roles of max and min
func tiChroma(xl, gl, xMax, xMin float32, rho [3]float32, bright bool) float32 {
	var xpf, lo, hi float32
	if bright {
		xpf = rho[0]*xMax + rho[1]*xl + rho[2]*xMin
		lo = xMin
		if gl > lo {
			lo = gl
		}
		hi = xl
	} else {
		xpf = rho[0]*xMin + rho[1]*xl + rho[2]*xMax
		lo = xl
		hi = xMax
		if gl < hi {
			hi = gl
		}
	}
	if xpf < lo {
		xpf = lo
	}
	if xpf > hi {
		xpf = hi
	}
	return xpf - gl
}

// Bounds chroma k to not exceed ref in the direction away from zero
func clipChroma(k, ref float32) float32 {
	if ref > 0 {
		if k > ref {
			return ref
		}
		return k
	}
	if ref < 0 {
		if k < ref {
			return ref
		}
		return k
	}
	return 0
}

// First-order differences along the row, grad[j]=row[j]-row[j-1].
// The first column has no predecessor and is defined as zero; it is only
// reached when the window touches the row start
func rowGradient(row []float32) []float32 {
	grad := make([]float32, len(row))
	for j := 1; j < len(row); j++ {
		grad[j] = row[j] - row[j-1]
	}
	return grad
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
