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
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
)

// Image is an 8-bit RGB or RGBA image buffer.
//
// Pixels are stored row by row without padding, with Channels samples per
// pixel in the order R, G, B (and A, if Channels is 4).  The alpha channel
// is never modified by the adjustments in this package.
type Image struct {
	Width    int
	Height   int
	Channels int // 3 or 4
	Pix      []uint8
}

// NewImage allocates a black image of the given size.
func NewImage(width, height, channels int) *Image {
	if channels != 4 {
		channels = 3
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Check verifies that the image dimensions match the buffer size.
func (img *Image) Check() error {
	if img == nil || img.Width < 0 || img.Height < 0 ||
		(img.Channels != 3 && img.Channels != 4) ||
		len(img.Pix) != img.Width*img.Height*img.Channels {
		return errInvalidImage
	}
	return nil
}

// At returns the colour components of the pixel at (x, y).
// For RGB images, a is always 255.
func (img *Image) At(x, y int) (r, g, b, a uint8) {
	i := (y*img.Width + x) * img.Channels
	p := img.Pix[i : i+img.Channels : i+img.Channels]
	if img.Channels == 4 {
		return p[0], p[1], p[2], p[3]
	}
	return p[0], p[1], p[2], 255
}

// Set changes the colour of the pixel at (x, y).
// For RGB images, a is ignored.
func (img *Image) Set(x, y int, r, g, b, a uint8) {
	i := (y*img.Width + x) * img.Channels
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	if img.Channels == 4 {
		img.Pix[i+3] = a
	}
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	res := *img
	res.Pix = append([]uint8(nil), img.Pix...)
	return &res
}

// FromImage converts a Go image into an RGBA Image with non-premultiplied
// alpha.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	res := NewImage(b.Dx(), b.Dy(), 4)
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < res.Height; y++ {
			i := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
			copy(res.Pix[y*4*res.Width:], nrgba.Pix[i:i+4*res.Width])
		}
		return res
	}
	parallel.Line(res.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < res.Width; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				res.Set(x, y, c.R, c.G, c.B, c.A)
			}
		}
	})
	return res
}

// ToNRGBA converts the image into a Go image.
func (img *Image) ToNRGBA() *image.NRGBA {
	res := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := img.At(x, y)
			i := res.PixOffset(x, y)
			res.Pix[i] = r
			res.Pix[i+1] = g
			res.Pix[i+2] = b
			res.Pix[i+3] = a
		}
	}
	return res
}

// Adjuster is implemented by all colour adjustments in this package.
//
// AdjustRGB must be a pure function of its arguments, so that it can be
// called concurrently for different pixels.
type Adjuster interface {
	AdjustRGB(r, g, b uint8) (uint8, uint8, uint8)
}

// AdjusterFunc turns an ordinary function into an [Adjuster].
type AdjusterFunc func(r, g, b uint8) (uint8, uint8, uint8)

// AdjustRGB implements the [Adjuster] interface.
func (f AdjusterFunc) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return f(r, g, b)
}

type identity struct{}

func (identity) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) { return r, g, b }

// Chain applies several adjusters in order.
type Chain []Adjuster

// AdjustRGB implements the [Adjuster] interface.
func (c Chain) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	for _, a := range c {
		r, g, b = a.AdjustRGB(r, g, b)
	}
	return r, g, b
}

// Apply returns a new image, obtained by applying adj to every pixel of img.
// Rows are processed in parallel.
func Apply(img *Image, adj Adjuster) (*Image, error) {
	if err := img.Check(); err != nil {
		return nil, err
	}
	return applyIndexed(img, func(_ int, r, g, b uint8) (uint8, uint8, uint8) {
		return adj.AdjustRGB(r, g, b)
	}), nil
}

// ApplyMasked is like [Apply], but blends the adjusted pixels with the
// original pixels using mask as the weight of the adjusted image.
// If mask is nil, ApplyMasked is equivalent to Apply.
func ApplyMasked(img *Image, adj Adjuster, mask *Mask) (*Image, error) {
	return applyMaskedFunc(img, mask, func(_ int, r, g, b uint8) (uint8, uint8, uint8) {
		return adj.AdjustRGB(r, g, b)
	})
}

// applyMaskedFunc is like [ApplyMasked], but fn also receives the pixel
// index y*Width+x.  Mask weights are clamped to [0, 1], with NaN counting
// as 0.
func applyMaskedFunc(img *Image, mask *Mask, fn func(k int, r, g, b uint8) (uint8, uint8, uint8)) (*Image, error) {
	if err := img.Check(); err != nil {
		return nil, err
	}
	if mask == nil {
		return applyIndexed(img, fn), nil
	}
	if err := mask.match(img); err != nil {
		return nil, err
	}

	return applyIndexed(img, func(k int, r0, g0, b0 uint8) (uint8, uint8, uint8) {
		m := clampParam(mask.Pix[k], 0, 1)
		if m == 0 {
			return r0, g0, b0
		}
		r, g, b := fn(k, r0, g0, b0)
		if m == 1 {
			return r, g, b
		}
		return mix(r0, r, m), mix(g0, g, m), mix(b0, b, m)
	}), nil
}

// applyIndexed maps every pixel of img through fn, which receives the
// pixel index y*Width+x.  The alpha channel is copied unchanged.
func applyIndexed(img *Image, fn func(k int, r, g, b uint8) (uint8, uint8, uint8)) *Image {
	res := img.Clone()
	ch := img.Channels
	parallel.Line(img.Height, func(start, end int) {
		for k := start * img.Width; k < end*img.Width; k++ {
			p := res.Pix[k*ch : k*ch+3 : k*ch+3]
			p[0], p[1], p[2] = fn(k, p[0], p[1], p[2])
		}
	})
	return res
}

// mix linearly interpolates between two samples.
func mix(orig, adjusted uint8, t float64) uint8 {
	o := float64(orig)
	return toByte(o + (float64(adjusted)-o)*t)
}

func (img *Image) String() string {
	return fmt.Sprintf("%dx%dx%d image", img.Width, img.Height, img.Channels)
}
