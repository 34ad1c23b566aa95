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

import (
	"testing"
)

func TestTransposed(t *testing.T) {
	p := NewFromData(3, 2, []float32{
		1, 2, 3,
		4, 5, 6,
	})
	tr := p.Transposed()
	if tr.Width != 2 || tr.Height != 3 {
		t.Fatalf("transposed dimensions %dx%d; want 2x3", tr.Width, tr.Height)
	}
	want := []float32{
		1, 4,
		2, 5,
		3, 6,
	}
	for i, v := range tr.Data {
		if v != want[i] {
			t.Errorf("transposed data[%d]=%f; want %f", i, v, want[i])
		}
	}
}

func TestTransposedRoundTrip(t *testing.T) {
	p := New(5, 3)
	for i := range p.Data {
		p.Data[i] = float32(i) * 0.25
	}
	rt := p.Transposed().Transposed()
	if rt.Width != p.Width || rt.Height != p.Height {
		t.Fatalf("round trip dimensions %dx%d; want %dx%d", rt.Width, rt.Height, p.Width, p.Height)
	}
	for i, v := range rt.Data {
		if v != p.Data[i] {
			t.Errorf("round trip data[%d]=%f; want %f", i, v, p.Data[i])
		}
	}
}

func TestRowAliases(t *testing.T) {
	p := New(4, 2)
	row := p.Row(1)
	row[2] = 42
	if p.At(2, 1) != 42 {
		t.Errorf("row write not visible in plane, got %f", p.At(2, 1))
	}
}

func TestCloneIndependent(t *testing.T) {
	p := New(2, 2)
	p.Set(1, 1, 7)
	c := p.Clone()
	c.Set(1, 1, 9)
	if p.At(1, 1) != 7 {
		t.Errorf("clone write leaked into original, got %f", p.At(1, 1))
	}
	if c.At(1, 1) != 9 {
		t.Errorf("clone value %f; want 9", c.At(1, 1))
	}
}
