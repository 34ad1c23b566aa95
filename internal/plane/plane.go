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

package plane

// A single-channel 2D image plane of float32 samples in row-major order
type Plane struct {
	Width  int
	Height int
	Data   []float32 // len Width*Height, row-major
}

// Creates a plane of the given size with zeroed data
func New(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
}

// Creates a plane wrapping the given data. Data is not copied
func NewFromData(width, height int, data []float32) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Data:   data,
	}
}

// Returns the sample at column x, row y
func (p *Plane) At(x, y int) float32 {
	return p.Data[y*p.Width+x]
}

// Sets the sample at column x, row y
func (p *Plane) Set(x, y int, v float32) {
	p.Data[y*p.Width+x] = v
}

// Returns row y as a subslice of the plane data. The slice aliases the plane
func (p *Plane) Row(y int) []float32 {
	return p.Data[y*p.Width : (y+1)*p.Width]
}

// Returns a deep copy of the plane
func (p *Plane) Clone() *Plane {
	data := make([]float32, len(p.Data))
	copy(data, p.Data)
	return NewFromData(p.Width, p.Height, data)
}

// Returns a freshly allocated row/column-swapped copy of the plane.
// Lets row-wise filtering code run along columns as well
func (p *Plane) Transposed() *Plane {
	t := New(p.Height, p.Width)
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x, v := range row {
			t.Data[x*t.Width+y] = v
		}
	}
	return t
}
