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
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"

	_ "golang.org/x/image/tiff" // register TIFF decoding
)

// Decodes a PNG, JPEG or TIFF image from the reader and converts it to
// normalized [0,1] float32 samples
func ReadImage(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())

	const scale = 1.0 / 65535
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rv, gv, bv, _ := src.At(x, y).RGBA()
			img.Pix[i] = float32(rv) * scale
			img.Pix[i+1] = float32(gv) * scale
			img.Pix[i+2] = float32(bv) * scale
			i += 3
		}
	}
	return img, nil
}

// Reads an image from the named file, with the format detected from the
// content rather than the file suffix
func ReadImageFromFile(fileName string) (*Image, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadImage(bufio.NewReader(file))
}
