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

	"github.com/valyala/fastrand"
	"gonum.org/v1/gonum/stat"

	"github.com/defringe/defringe/internal/plane"
)

// Summary statistics of an applied chroma correction
type ChromaStats struct {
	Mean   float64
	StdDev float64
	MaxAbs float64
}

// Calculates fast approximate statistics of the chroma plane by
// subsampling the given number of values. For numSamples at or above the
// plane size, all samples are used instead and the result is exact
func NewChromaStats(k *plane.Plane, numSamples int) *ChromaStats {
	var samples []float64
	if numSamples >= len(k.Data) {
		samples = make([]float64, len(k.Data))
		for i, v := range k.Data {
			samples[i] = float64(v)
		}
	} else {
		samples = make([]float64, numSamples)
		rng := fastrand.RNG{}
		max := uint32(len(k.Data))
		for i := range samples {
			samples[i] = float64(k.Data[rng.Uint32n(max)])
		}
	}

	mean, stdDev := stat.MeanStdDev(samples, nil)
	maxAbs := float64(0)
	for _, s := range samples {
		if a := math.Abs(s); a > maxAbs {
			maxAbs = a
		}
	}
	return &ChromaStats{Mean: mean, StdDev: stdDev, MaxAbs: maxAbs}
}
