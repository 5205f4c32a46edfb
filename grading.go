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
	"math"
)

// Region is one of the three tonal ranges used by colour grading.
type Region int

// The three grading regions.
const (
	Shadows Region = iota
	Midtones
	Highlights
)

func (r Region) String() string {
	switch r {
	case Shadows:
		return "shadows"
	case Midtones:
		return "midtones"
	case Highlights:
		return "highlights"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// RegionAdjust is the colour wheel setting of one grading region.
type RegionAdjust struct {
	Hue        float64 `json:"hue"`        // degrees
	Saturation float64 `json:"saturation"` // [0, 100]
	Luminance  float64 `json:"luminance"`  // [-100, 100]
}

func (a RegionAdjust) isZero() bool {
	return a.Hue == 0 && a.Saturation == 0 && a.Luminance == 0
}

// GradingParams describes a three-way colour grading.
//
// The zero value has OverallStrength 0 and therefore leaves all colours
// unchanged; use [DefaultGradingParams] as a starting point.
type GradingParams struct {
	Shadows    RegionAdjust
	Midtones   RegionAdjust
	Highlights RegionAdjust

	// BlendMode combines the original and the graded colour.
	BlendMode BlendMode

	// OverallStrength scales all adjustments, in [0, 2].
	OverallStrength float64

	// Balance moves the boundary between shadows and highlights, in
	// [-100, 100].  Positive values enlarge the highlight region.
	Balance float64

	// Fade mixes the original image back in, in percent.  0 keeps the
	// full grading, 100 gives the original image.
	Fade float64
}

// DefaultGradingParams returns neutral grading parameters with
// OverallStrength 1.
func DefaultGradingParams() *GradingParams {
	return &GradingParams{OverallStrength: 1}
}

// Region returns the adjustment of region r.
func (p *GradingParams) Region(r Region) RegionAdjust {
	switch r {
	case Shadows:
		return p.Shadows
	case Midtones:
		return p.Midtones
	default:
		return p.Highlights
	}
}

type gradingJSON struct {
	Shadows         *RegionAdjust `json:"shadows,omitempty"`
	Midtones        *RegionAdjust `json:"midtones,omitempty"`
	Highlights      *RegionAdjust `json:"highlights,omitempty"`
	BlendMode       *BlendMode    `json:"blend_mode,omitempty"`
	OverallStrength *float64      `json:"overall_strength,omitempty"`
	Blend           *float64      `json:"blend,omitempty"`
	Balance         *float64      `json:"balance,omitempty"`
}

// ParseGradingParams decodes grading parameters from a JSON object like
//
//	{"shadows": {"hue": 220, "saturation": 30, "luminance": 0},
//	 "highlights": {"hue": 40, "saturation": 25, "luminance": 5},
//	 "blend_mode": "soft_light", "overall_strength": 1.0}
//
// Omitted fields keep the values of [DefaultGradingParams].  The optional
// "blend" field (percent of the graded result to keep, default 100) and
// "balance" field are also recognised.
func ParseGradingParams(data []byte) (*GradingParams, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tone: grading parameters: %w", err)
	}
	for key := range raw {
		switch key {
		case "shadows", "midtones", "highlights",
			"blend_mode", "overall_strength", "blend", "balance":
		default:
			return nil, fmt.Errorf("%w %q", errUnknownRegion, key)
		}
	}

	var in gradingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("tone: grading parameters: %w", err)
	}
	p := DefaultGradingParams()
	if in.Shadows != nil {
		p.Shadows = *in.Shadows
	}
	if in.Midtones != nil {
		p.Midtones = *in.Midtones
	}
	if in.Highlights != nil {
		p.Highlights = *in.Highlights
	}
	if in.BlendMode != nil {
		p.BlendMode = *in.BlendMode
	}
	if in.OverallStrength != nil {
		p.OverallStrength = *in.OverallStrength
	}
	if in.Blend != nil {
		p.Fade = 100 - clampParam(*in.Blend, 0, 100)
	}
	if in.Balance != nil {
		p.Balance = *in.Balance
	}
	return p, nil
}

// MarshalJSON encodes the parameters in the format read by
// [ParseGradingParams].
func (p *GradingParams) MarshalJSON() ([]byte, error) {
	blend := 100 - p.Fade
	return json.Marshal(gradingJSON{
		Shadows:         &p.Shadows,
		Midtones:        &p.Midtones,
		Highlights:      &p.Highlights,
		BlendMode:       &p.BlendMode,
		OverallStrength: &p.OverallStrength,
		Blend:           &blend,
		Balance:         &p.Balance,
	})
}

// Widths of the luminance windows of the grading regions.
const (
	regionTransition = 0.15
	midtoneWidth     = 0.35
)

// RegionMask returns the weight of region r for a pixel with luminance lum
// in [0, 1].  Shadows and highlights use sigmoid windows, midtones use a
// Gaussian window scaled by 1.2.  The three weights overlap and are not
// normalised.
func RegionMask(r Region, lum, balance float64) float64 {
	bal := clampParam(balance, -100, 100) / 100
	switch r {
	case Shadows:
		threshold := 0.25 + bal*0.2
		return 1 / (1 + math.Exp(-(threshold-lum)/regionTransition))
	case Highlights:
		threshold := 0.75 - bal*0.2
		return 1 / (1 + math.Exp(-(lum-threshold)/regionTransition))
	default:
		center := 0.5 + bal*0.1
		d := (lum - center) / midtoneWidth
		return math.Exp(-0.5*d*d) * 1.2
	}
}

// maxColorOffset is the largest opponent-colour offset produced by a
// colour wheel at full saturation.
const maxColorOffset = 0.3

// wheelOffset converts a colour wheel position into an offset in an
// approximate opponent colour space.  A is the red-green axis and B is
// the yellow-blue axis.
func wheelOffset(hue, saturation float64) (a, b float64) {
	rad := hue * math.Pi / 180
	sat := saturation / 100
	a = math.Cos(rad) * sat * maxColorOffset
	b = math.Sin(rad) * sat * maxColorOffset

	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	switch {
	case h <= 30 || h >= 330: // red
		a *= 1.1
	case h >= 150 && h <= 210: // cyan
		a *= 0.9
	case h >= 60 && h <= 120: // green
		b *= 0.95
	case h >= 240 && h <= 300: // blue
		b *= 1.05
	}
	return a, b
}

// Adjust grades a single colour.  maskValue in [0, 1] mixes the original
// colour (0) with the graded colour (1).
func (p *GradingParams) Adjust(c RGB, maskValue float64) RGB {
	noRegions := p.Shadows.isZero() && p.Midtones.isZero() && p.Highlights.isZero()
	if noRegions && p.BlendMode == Normal {
		return c
	}

	strength := clampParam(p.OverallStrength, 0, 2)
	lum := 0.299*c.R + 0.587*c.G + 0.114*c.B

	var dR, dG, dB float64
	for r := Shadows; r <= Highlights; r++ {
		adj := p.Region(r)
		if adj.isZero() {
			continue
		}
		w := RegionMask(r, lum, p.Balance) * strength

		sat := clampParam(adj.Saturation, 0, 100)
		if adj.Hue != 0 || sat != 0 {
			a, b := wheelOffset(adj.Hue, sat)
			dR += (0.6*a + 0.3*b) * w
			dG += (-0.5*a + 0.2*b) * w
			dB += (-0.1*a - 0.8*b) * w
		}
		if lumAdj := clampParam(adj.Luminance, -100, 100); lumAdj != 0 {
			d := lumAdj / 100 * w * 0.2
			dR += d
			dG += d
			dB += d
		}
	}

	processed := RGB{
		R: clamp(c.R+dR, 0, 1),
		G: clamp(c.G+dG, 0, 1),
		B: clamp(c.B+dB, 0, 1),
	}
	res := ApplyBlendMode(c, processed, p.BlendMode, strength)

	keep := 1 - clampParam(p.Fade, 0, 100)/100
	m := clampParam(maskValue, 0, 1) * keep
	return RGB{
		R: c.R + (res.R-c.R)*m,
		G: c.G + (res.G-c.G)*m,
		B: c.B + (res.B-c.B)*m,
	}
}

// AdjustRGB implements the [Adjuster] interface.
func (p *GradingParams) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	c := p.Adjust(RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}, 1)
	return unitToByte(c.R), unitToByte(c.G), unitToByte(c.B)
}

// Grade applies the colour grading to img.  If mask is not nil, it must
// have the same dimensions as img, and each pixel is mixed between the
// original and the graded colour according to the mask.
func Grade(img *Image, p *GradingParams, mask *Mask) (*Image, error) {
	if mask == nil {
		return Apply(img, p)
	}
	if err := img.Check(); err != nil {
		return nil, err
	}
	if err := mask.match(img); err != nil {
		return nil, err
	}
	return applyIndexed(img, func(k int, r, g, b uint8) (uint8, uint8, uint8) {
		c := p.Adjust(RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}, mask.Pix[k])
		return unitToByte(c.R), unitToByte(c.G), unitToByte(c.B)
	}), nil
}
