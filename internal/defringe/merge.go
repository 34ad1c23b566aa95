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

// Combines the horizontal-pass and vertical-pass filter results for one
// channel. Both inputs must be in row-major orientation, i.e. the caller
// transposes the vertical pass back first.
//
// Per pixel, the false-color chroma with the smaller magnitude wins; ties
// favor the vertical pass. Independently, the smaller magnitude of the two
// TI chroma estimates selects the entire (KTI, XMax, XMin) triple from one
// axis, never mixing the envelope of one axis with the TI chroma of the
// other. The two decisions may pick different axes for the same pixel.
//
// The merged result lives in dedicated buffers seeded from the vertical
// pass and overwritten where the horizontal pass wins, so neither input
// is aliased or modified
func mergeDirections(hor, ver *filterResult) *filterResult {
	m := &filterResult{
		K:    ver.K.Clone(),
		KTI:  ver.KTI.Clone(),
		XMax: ver.XMax.Clone(),
		XMin: ver.XMin.Clone(),
	}
	for i, kh := range hor.K.Data {
		if abs32(kh) < abs32(ver.K.Data[i]) {
			m.K.Data[i] = kh
		}
	}
	for i, kth := range hor.KTI.Data {
		if abs32(kth) < abs32(ver.KTI.Data[i]) {
			m.KTI.Data[i] = kth
			m.XMax.Data[i] = hor.XMax.Data[i]
			m.XMin.Data[i] = hor.XMin.Data[i]
		}
	}
	return m
}
