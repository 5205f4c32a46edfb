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

// Band is one of the eight hue ranges of the HSL adjustment.
type Band int

// The eight HSL bands, in order of increasing hue.
const (
	Red Band = iota
	Orange
	Yellow
	Green
	Aqua
	Blue
	Purple
	Magenta
	numBands
)

var bandNames = [numBands]string{
	"red", "orange", "yellow", "green", "aqua", "blue", "purple", "magenta",
}

var bandCenters = [numBands]float64{0, 30, 60, 120, 180, 240, 270, 300}

func (b Band) String() string {
	if b >= 0 && b < numBands {
		return bandNames[b]
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// Center returns the hue at the centre of the band, in degrees.
func (b Band) Center() float64 {
	return bandCenters[b]
}

// ParseBand converts a band name like "red" into a Band.
func ParseBand(name string) (Band, error) {
	for i, n := range bandNames {
		if n == name {
			return Band(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", errUnknownBand, name)
}

// BandAdjust holds the three sliders of one HSL band.  All values are in
// [-100, 100].  Hue is a shift in degrees; Saturation and Lightness are
// percentages.
type BandAdjust struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// HSLParams holds the adjustments for all eight bands, indexed by [Band].
type HSLParams [numBands]BandAdjust

// IsZero reports whether all sliders of all bands are zero.
func (p *HSLParams) IsZero() bool {
	for _, b := range p {
		if b != (BandAdjust{}) {
			return false
		}
	}
	return true
}

// ParseHSLParams decodes HSL parameters from a JSON object keyed by band
// name, for example {"red": {"hue": 0, "saturation": -100, "lightness": 0}}.
// Missing bands are left at zero.
func ParseHSLParams(data []byte) (*HSLParams, error) {
	var raw map[string]BandAdjust
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tone: HSL parameters: %w", err)
	}
	p := &HSLParams{}
	for name, adj := range raw {
		b, err := ParseBand(name)
		if err != nil {
			return nil, err
		}
		p[b] = adj
	}
	return p, nil
}

// MarshalJSON encodes the parameters as an object keyed by band name.
func (p *HSLParams) MarshalJSON() ([]byte, error) {
	raw := make(map[string]BandAdjust, numBands)
	for i, adj := range p {
		raw[bandNames[i]] = adj
	}
	return json.Marshal(raw)
}

// bandRadius is the influence radius of a band, as a fraction of the
// full hue circle.
const bandRadius = 1.0 / 6

// BandWeight returns the raw (not normalised) influence of band b on a
// pixel with hue h, given in degrees.  The weight is 1 at the band centre
// and falls off as a squared half-cosine to 0 at a distance of 60 degrees.
func BandWeight(b Band, h float64) float64 {
	d := math.Abs(h/360 - bandCenters[b]/360)
	d -= math.Floor(d)
	if d > 0.5 {
		d = 1 - d
	}
	if d >= bandRadius {
		return 0
	}
	c := math.Cos(d * math.Pi / bandRadius / 2)
	return c * c
}

// AdjustRGB implements the [Adjuster] interface.
func (p *HSLParams) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	if p.IsZero() {
		return r, g, b
	}

	h, s, l := rgbToHSL(r, g, b)

	var w [numBands]float64
	total := 0.0
	for i := range w {
		w[i] = BandWeight(Band(i), h*360)
		total += w[i]
	}
	if total <= 0 {
		return r, g, b
	}

	hueShift := 0.0
	satFactor := 1.0
	lightFactor := 1.0
	for i, adj := range p {
		if w[i] == 0 {
			continue
		}
		wi := w[i] / total

		hueShift += clampParam(adj.Hue, -100, 100) / 360 * wi

		a := clampParam(adj.Saturation, -100, 100) / 100
		if a > 0 {
			satFactor += wi * a * (1 - 0.3*s)
		} else {
			satFactor += wi * a * (0.7 + 0.3*s)
		}

		a = clampParam(adj.Lightness, -100, 100) / 100
		if a > 0 {
			lightFactor += wi * a * (1 - 0.5*l)
		} else {
			lightFactor += wi * a * (0.5 + 0.5*l)
		}
	}

	h = math.Mod(h+hueShift, 1)
	if h < 0 {
		h += 1
	}
	s = clamp(s*satFactor, 0, 1)
	l = clamp(l*lightFactor, 0, 1)
	return hslToRGB(h, s, l)
}

// rgbToHSL converts an 8-bit colour to hue, saturation and lightness,
// all in [0, 1].
func rgbToHSL(r8, g8, b8 uint8) (h, s, l float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := unitToByte(l)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return unitToByte(hueToRGB(p, q, h+1.0/3)),
		unitToByte(hueToRGB(p, q, h)),
		unitToByte(hueToRGB(p, q, h-1.0/3))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
