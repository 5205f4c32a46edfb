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

import "math"

// Boundaries of the four parametric tone regions, in 8-bit units.
const (
	ShadowsEnd = 63.75
	DarksEnd   = 127.5
	LightsEnd  = 191.25
)

// ToneParams holds the four region sliders of a parametric tone curve.
// All values are in [-100, 100]; out of range values are clamped when
// the parameters are used.
type ToneParams struct {
	Highlights float64 `json:"highlights"`
	Lights     float64 `json:"lights"`
	Darks      float64 `json:"darks"`
	Shadows    float64 `json:"shadows"`
}

// IsZero reports whether all four sliders are at zero.
func (p ToneParams) IsZero() bool {
	return p.Highlights == 0 && p.Lights == 0 && p.Darks == 0 && p.Shadows == 0
}

func (p ToneParams) clamped() ToneParams {
	return ToneParams{
		Highlights: clampParam(p.Highlights, -100, 100),
		Lights:     clampParam(p.Lights, -100, 100),
		Darks:      clampParam(p.Darks, -100, 100),
		Shadows:    clampParam(p.Shadows, -100, 100),
	}
}

// RegionWeight returns the weight of input x for the tone region
// [start, end].  The weight is a Gaussian bump which is 1 at the centre of
// the region and exp(-2) at the region boundaries; outside of the region
// the weight is 0.
func RegionWeight(x, start, end float64) float64 {
	if x < start || x > end {
		return 0
	}
	center := (start + end) / 2
	d := math.Abs(x-center) / ((end - start) / 2)
	return math.Exp(-2 * d * d)
}

// AdjustTone applies the parametric tone sliders to the base curve value
// baseY at input x.  Both x and baseY are in 8-bit units.  The result is
// not clamped.
//
// Region weights are not normalised: near the region boundaries the tails
// of two neighbouring regions both contribute.
func AdjustTone(x, baseY float64, tone ToneParams) float64 {
	if tone.IsZero() {
		return baseY
	}
	tone = tone.clamped()

	wS := RegionWeight(x, 0, ShadowsEnd)
	wD := RegionWeight(x, ShadowsEnd, DarksEnd)
	wL := RegionWeight(x, DarksEnd, LightsEnd)
	wH := RegionWeight(x, LightsEnd, 255)

	total := tone.Shadows*wS*0.8 +
		tone.Darks*wD*0.6 +
		tone.Lights*wL*0.6 +
		tone.Highlights*wH*0.8
	return baseY + total*1.28
}
