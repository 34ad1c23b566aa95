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
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/valyala/fastrand"
	"golang.org/x/image/tiff"
)

// Options for encoding an image to disk
type WriteOptions struct {
	JpegQuality int  // quality for JPEG encoding, 1..100
	Dither      bool // randomized dithering when quantizing to 8 bits
}

// Writes the image to the named file; the suffix selects the format.
// PNG and JPEG quantize to 8 bits per sample, TIFF keeps 16
func (img *Image) WriteToFile(fileName string, opts WriteOptions) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	defer writer.Flush()

	switch strings.ToLower(fileName[strings.LastIndex(fileName, ".")+1:]) {
	case "png":
		return img.WritePNG(writer, opts)
	case "jpg", "jpeg":
		return img.WriteJPEG(writer, opts)
	case "tif", "tiff":
		return img.WriteTIFF(writer)
	}
	return fmt.Errorf("unknown image format for file '%s'", fileName)
}

// Encodes the image as 8-bit PNG
func (img *Image) WritePNG(w io.Writer, opts WriteOptions) error {
	return png.Encode(w, img.toRGBA(opts.Dither))
}

// Encodes the image as 8-bit JPEG with the given quality
func (img *Image) WriteJPEG(w io.Writer, opts WriteOptions) error {
	quality := opts.JpegQuality
	if quality <= 0 {
		quality = 95
	}
	return jpeg.Encode(w, img.toRGBA(opts.Dither), &jpeg.Options{Quality: quality})
}

// Encodes the image as 16-bit TIFF
func (img *Image) WriteTIFF(w io.Writer) error {
	out := image.NewRGBA64(image.Rect(0, 0, img.Width, img.Height))
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA64(x, y, color.RGBA64{
				R: uint16(clamp01(img.Pix[i])*65535 + 0.5),
				G: uint16(clamp01(img.Pix[i+1])*65535 + 0.5),
				B: uint16(clamp01(img.Pix[i+2])*65535 + 0.5),
				A: 65535,
			})
			i += 3
		}
	}
	return tiff.Encode(w, out, &tiff.Options{Compression: tiff.Deflate})
}

// Converts to an 8-bit RGBA image, optionally dithering the quantization
func (img *Image) toRGBA(dither bool) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	rng := fastrand.RNG{}
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: quantize8(img.Pix[i], dither, &rng),
				G: quantize8(img.Pix[i+1], dither, &rng),
				B: quantize8(img.Pix[i+2], dither, &rng),
				A: 255,
			})
			i += 3
		}
	}
	return out
}

// Quantizes a [0,1] sample to 8 bits. With dithering, the fractional part
// becomes the probability of rounding up, which trades banding for noise
func quantize8(v float32, dither bool, rng *fastrand.RNG) uint8 {
	u := clamp01(v) * 255
	n := uint32(u)
	if !dither {
		if u-float32(n) >= 0.5 && n < 255 {
			n++
		}
		return uint8(n)
	}
	frac := u - float32(n)
	if n < 255 && float32(rng.Uint32n(4096))*(1.0/4096) < frac {
		n++
	}
	return uint8(n)
}
