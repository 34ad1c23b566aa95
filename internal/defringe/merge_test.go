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
	"testing"

	"github.com/defringe/defringe/internal/plane"
)

func resultFromData(w, h int, k, kti, xmax, xmin []float32) *filterResult {
	return &filterResult{
		K:    plane.NewFromData(w, h, k),
		KTI:  plane.NewFromData(w, h, kti),
		XMax: plane.NewFromData(w, h, xmax),
		XMin: plane.NewFromData(w, h, xmin),
	}
}

func TestMergeDirectionsSmallerMagnitudeWins(t *testing.T) {
	hor := resultFromData(4, 1,
		[]float32{0.1, -0.5, 0.3, 0.0},
		[]float32{0.2, -0.1, 0.4, 0.1},
		[]float32{1, 1, 1, 1},
		[]float32{0, 0, 0, 0})
	ver := resultFromData(4, 1,
		[]float32{-0.2, 0.1, -0.3, 0.1},
		[]float32{0.1, -0.3, 0.4, -0.2},
		[]float32{2, 2, 2, 2},
		[]float32{-1, -1, -1, -1})

	m := mergeDirections(hor, ver)

	wantK := []float32{0.1, 0.1, -0.3, 0.0}
	for i, v := range m.K.Data {
		if v != wantK[i] {
			t.Errorf("K[%d]=%f; want %f", i, v, wantK[i])
		}
	}
	// |KTI| ties at index 2 favor the vertical pass, and the envelope
	// follows the winning KTI axis atomically
	wantKTI := []float32{0.1, -0.1, 0.4, 0.1}
	wantXMax := []float32{2, 1, 2, 1}
	wantXMin := []float32{-1, 0, -1, 0}
	for i := range m.KTI.Data {
		if m.KTI.Data[i] != wantKTI[i] || m.XMax.Data[i] != wantXMax[i] || m.XMin.Data[i] != wantXMin[i] {
			t.Errorf("TI triple [%d]=(%f, %f, %f); want (%f, %f, %f)", i,
				m.KTI.Data[i], m.XMax.Data[i], m.XMin.Data[i],
				wantKTI[i], wantXMax[i], wantXMin[i])
		}
	}
}

func TestMergeDirectionsLeavesInputsUntouched(t *testing.T) {
	hor := resultFromData(2, 1,
		[]float32{0.1, 0.2}, []float32{0.1, 0.2}, []float32{1, 1}, []float32{0, 0})
	ver := resultFromData(2, 1,
		[]float32{0.3, 0.1}, []float32{0.3, 0.1}, []float32{2, 2}, []float32{-1, -1})

	m := mergeDirections(hor, ver)
	m.K.Data[0] = 99
	m.KTI.Data[0] = 99

	if hor.K.Data[0] != 0.1 || ver.K.Data[0] != 0.3 {
		t.Errorf("merge aliased its inputs: hor %f ver %f", hor.K.Data[0], ver.K.Data[0])
	}
}
