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
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/parallel"
)

// EnhanceParams describes a camera-raw style detail enhancement.
//
// The zero value has OverallStrength 0 and therefore leaves all colours
// unchanged; use [DefaultEnhanceParams] as a starting point.
type EnhanceParams struct {
	// Texture boosts fine detail, in [-100, 100].
	Texture float64

	// Clarity boosts local contrast of larger structures, in [-100, 100].
	Clarity float64

	// Dehaze increases contrast and saturation, in [-100, 100].
	// Negative values add haze.
	Dehaze float64

	// OverallStrength scales the enhancement, in [0, 2].
	OverallStrength float64

	// Fade mixes the original image back in, in percent.  0 keeps the
	// full enhancement, 100 gives the original image.
	Fade float64
}

// DefaultEnhanceParams returns neutral enhancement parameters with
// OverallStrength 1.
func DefaultEnhanceParams() *EnhanceParams {
	return &EnhanceParams{OverallStrength: 1}
}

// IsIdentity reports whether the enhancement leaves every image unchanged.
func (p *EnhanceParams) IsIdentity() bool {
	return (p.Texture == 0 && p.Clarity == 0 && p.Dehaze == 0) ||
		!(p.OverallStrength > 0) || p.Fade >= 100
}

type enhanceJSON struct {
	Texture         *float64 `json:"texture,omitempty"`
	Clarity         *float64 `json:"clarity,omitempty"`
	Dehaze          *float64 `json:"dehaze,omitempty"`
	Blend           *float64 `json:"blend,omitempty"`
	OverallStrength *float64 `json:"overall_strength,omitempty"`
}

// ParseEnhanceParams decodes enhancement parameters from a JSON object
// with the fields "texture", "clarity", "dehaze", "blend" (percent of the
// enhanced result to keep, default 100) and "overall_strength".  Omitted
// fields keep the values of [DefaultEnhanceParams].
func ParseEnhanceParams(data []byte) (*EnhanceParams, error) {
	var in enhanceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("tone: enhance parameters: %w", err)
	}
	p := DefaultEnhanceParams()
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{in.Texture, &p.Texture},
		{in.Clarity, &p.Clarity},
		{in.Dehaze, &p.Dehaze},
		{in.OverallStrength, &p.OverallStrength},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if in.Blend != nil {
		p.Fade = 100 - clampParam(*in.Blend, 0, 100)
	}
	return p, nil
}

// Standard deviations of the Gaussian low-pass filters, in pixels.
const (
	textureSigma = 2.0
	claritySigma = 10.0
)

// Enhance applies texture, clarity and dehaze to img, in this order.
// The enhanced image is then mixed with the original according to
// OverallStrength and Fade.  If mask is not nil, it must have the same
// dimensions as img, and each pixel is mixed between the original and the
// enhanced colour according to the mask.
func Enhance(img *Image, p *EnhanceParams, mask *Mask) (*Image, error) {
	if err := img.Check(); err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return applyMaskedFunc(img, mask, func(_ int, r, g, b uint8) (uint8, uint8, uint8) {
			return r, g, b
		})
	}

	work := img
	if t := clampParam(p.Texture, -100, 100); t != 0 {
		work = boostDetail(work, textureSigma, t/100)
	}
	if c := clampParam(p.Clarity, -100, 100); c != 0 {
		work = boostDetail(work, claritySigma, c/100)
	}
	if d := clampParam(p.Dehaze, -100, 100); d != 0 {
		work = applyIndexed(work, func(_ int, r, g, b uint8) (uint8, uint8, uint8) {
			return Dehaze(d).AdjustRGB(r, g, b)
		})
	}

	amount := clampParam(p.OverallStrength, 0, 2) * (1 - clampParam(p.Fade, 0, 100)/100)
	ch := img.Channels
	return applyMaskedFunc(img, mask, func(k int, r, g, b uint8) (uint8, uint8, uint8) {
		q := work.Pix[k*ch : k*ch+3 : k*ch+3]
		return mix(r, q[0], amount), mix(g, q[1], amount), mix(b, q[2], amount)
	})
}

// boostDetail adds amount times the high-pass part of img, obtained by
// subtracting a Gaussian blurred copy, to img.  Negative amounts soften
// the image.
func boostDetail(img *Image, sigma, amount float64) *Image {
	w, h, ch := img.Width, img.Height, img.Channels
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for k := 0; k < w*h; k++ {
		copy(src.Pix[4*k:4*k+3], img.Pix[k*ch:k*ch+3])
		src.Pix[4*k+3] = 255
	}

	// bild's Gaussian kernel is exp(-x²/(4·radius))
	low := blur.Gaussian(src, sigma*sigma/2)

	res := img.Clone()
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				k := y*w + x
				p := res.Pix[k*ch : k*ch+3 : k*ch+3]
				q := low.Pix[low.PixOffset(x, y):]
				for c := range p {
					v := float64(p[c])
					p[c] = toByte(v + (v-float64(q[c]))*amount)
				}
			}
		}
	})
	return res
}

// Dehaze is an [Adjuster] which increases contrast and saturation to
// reduce atmospheric haze.  The value is in [-100, 100]; negative values
// add haze.
//
// In HSV space, the value channel V is replaced by V^(1-0.3d) and the
// saturation is scaled by 1+0.2d, where d is the slider value divided by
// 100.
type Dehaze float64

// AdjustRGB implements the [Adjuster] interface.
func (d Dehaze) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	f := clampParam(float64(d), -100, 100) / 100
	if f == 0 {
		return r, g, b
	}
	h, s, v := rgbToHSV(r, g, b)
	v = math.Pow(v, 1-0.3*f)
	s = clamp(s*(1+0.2*f), 0, 1)
	rf, gf, bf := hsvToRGB(h, s, v)
	return unitToByte(rf), unitToByte(gf), unitToByte(bf)
}

// rgbToHSV converts an 8-bit colour to hue, saturation and value, all in
// [0, 1].
func rgbToHSV(r8, g8, b8 uint8) (h, s, v float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	v = hi
	if hi == lo {
		return 0, 0, v
	}
	d := hi - lo
	s = d / hi
	switch hi {
	case r:
		h = (g - b) / d
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h6 := h * 6
	i := math.Floor(h6)
	f := h6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
