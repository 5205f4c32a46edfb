// seehuhn.de/go/tone - tone curves and colour adjustments
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package tone

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// Mask is a single-channel weight map with values in [0, 1].
// A value of 1 selects the adjusted pixel, 0 keeps the original.
type Mask struct {
	Width  int
	Height int
	Pix    []float64
}

// NewMask returns a mask of the given size with all weights set to 1.
func NewMask(width, height int) *Mask {
	pix := make([]float64, width*height)
	for i := range pix {
		pix[i] = 1
	}
	return &Mask{Width: width, Height: height, Pix: pix}
}

// MaskFromValues creates a mask from a row-major list of weights.
// Values are clamped to [0, 1]; NaN values become 0.
func MaskFromValues(width, height int, values []float64) (*Mask, error) {
	if width < 0 || height < 0 || len(values) != width*height {
		return nil, &DimensionMismatchError{
			ImageWidth:  width,
			ImageHeight: height,
			MaskWidth:   len(values),
			MaskHeight:  1,
		}
	}
	pix := make([]float64, len(values))
	for i, v := range values {
		pix[i] = clampParam(v, 0, 1)
	}
	return &Mask{Width: width, Height: height, Pix: pix}, nil
}

// MaskFromImage creates a mask from the grey values of an image.
// White gives weight 1, black gives weight 0.
func MaskFromImage(src image.Image) *Mask {
	b := src.Bounds()
	m := &Mask{Width: b.Dx(), Height: b.Dy(), Pix: make([]float64, b.Dx()*b.Dy())}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			m.Pix[y*m.Width+x] = float64(g.Y) / 65535
		}
	}
	return m
}

// LuminanceMask selects the pixels of img whose luminance (in [0, 1]) lies
// in the closed interval [low, high].
func LuminanceMask(img *Image, low, high float64) (*Mask, error) {
	if err := img.Check(); err != nil {
		return nil, err
	}
	m := &Mask{Width: img.Width, Height: img.Height, Pix: make([]float64, img.Width*img.Height)}
	for k := range m.Pix {
		p := img.Pix[k*img.Channels:]
		l := luma(p[0], p[1], p[2]) / 255
		if l >= low && l <= high {
			m.Pix[k] = 1
		}
	}
	return m, nil
}

// Invert returns a new mask with every weight w replaced by 1-w.
func (m *Mask) Invert() *Mask {
	res := &Mask{Width: m.Width, Height: m.Height, Pix: make([]float64, len(m.Pix))}
	for i, v := range m.Pix {
		res.Pix[i] = 1 - v
	}
	return res
}

// Blur feathers the mask edges with a Gaussian blur of the given radius.
// The weights are quantised to 8 bits in the process.  A radius <= 0
// returns an unmodified copy.
func (m *Mask) Blur(radius float64) *Mask {
	res := &Mask{Width: m.Width, Height: m.Height, Pix: append([]float64(nil), m.Pix...)}
	if radius <= 0 || len(m.Pix) == 0 {
		return res
	}

	gray := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		gray.Pix[i] = unitToByte(v)
	}
	blurred := blur.Gaussian(gray, radius)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			res.Pix[y*m.Width+x] = float64(blurred.Pix[blurred.PixOffset(x, y)]) / 255
		}
	}
	return res
}

// At returns the weight at (x, y).
func (m *Mask) At(x, y int) float64 {
	return m.Pix[y*m.Width+x]
}

func (m *Mask) match(img *Image) error {
	if m.Width != img.Width || m.Height != img.Height || len(m.Pix) != m.Width*m.Height {
		return &DimensionMismatchError{
			ImageWidth:  img.Width,
			ImageHeight: img.Height,
			MaskWidth:   m.Width,
			MaskHeight:  m.Height,
		}
	}
	return nil
}

// luma returns the Rec.601 luminance of an 8-bit colour, in [0, 255].
func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
