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
	"strings"
)

// CurveMode selects which parts of a [ToneCurve] are used.
type CurveMode int

const (
	// Combined applies the parametric curve first and the point curve
	// second.
	Combined CurveMode = iota

	// PointOnly uses the point curve only.
	PointOnly

	// ParametricOnly uses the base preset and the region sliders only.
	ParametricOnly
)

func (m CurveMode) String() string {
	switch m {
	case Combined:
		return "Combined"
	case PointOnly:
		return "Point"
	case ParametricOnly:
		return "Parametric"
	default:
		return fmt.Sprintf("CurveMode(%d)", int(m))
	}
}

// ParseCurveMode converts a mode name ("Point", "Parametric" or
// "Combined") into a CurveMode.
func ParseCurveMode(s string) (CurveMode, error) {
	switch strings.ToLower(s) {
	case "combined", "":
		return Combined, nil
	case "point":
		return PointOnly, nil
	case "parametric":
		return ParametricOnly, nil
	}
	return 0, fmt.Errorf("tone: unknown curve mode %q", s)
}

// Base curves for the parametric tone curve.
var baseCurves = map[string]CurveSpec{
	"Linear":          IdentityCurve,
	"Medium Contrast": {{0, 0}, {32, 22}, {64, 56}, {128, 128}, {192, 196}, {224, 230}, {255, 255}},
	"Strong Contrast": {{0, 0}, {32, 16}, {64, 44}, {128, 128}, {192, 208}, {224, 240}, {255, 255}},
}

// BaseCurve returns the named base curve of the parametric tone curve.
// Unknown names give the linear curve.
func BaseCurve(name string) CurveSpec {
	if spec, ok := baseCurves[name]; ok {
		return spec
	}
	return IdentityCurve
}

// ToneCurve is a tone curve in the style of a raw converter: a base curve
// modified by the four region sliders, optionally followed by a point
// curve.  The curve is applied to the pixel luminance, and the colour
// channels are scaled to match the new luminance.
//
// Both the base curve and the point curve use natural spline interpolation.
type ToneCurve struct {
	Base   CurveSpec
	Points CurveSpec
	Tone   ToneParams
	Mode   CurveMode
}

// saturationProtection is the weight of the scaled colour in the final
// mix with its own grey value.
const saturationProtection = 0.95

// IsIdentity reports whether the tone curve leaves every pixel unchanged.
func (tc *ToneCurve) IsIdentity() bool {
	base := tc.Base == nil || Sanitize(tc.Base).IsIdentity()
	pts := tc.Points == nil || Sanitize(tc.Points).IsIdentity()
	switch tc.Mode {
	case PointOnly:
		return pts
	case ParametricOnly:
		return base && tc.Tone.IsZero()
	default:
		return base && pts && tc.Tone.IsZero()
	}
}

// LUT computes the combined tone mapping table of the curve, with values
// in [0, 255].
func (tc *ToneCurve) LUT() [256]float64 {
	base := tc.Base
	if base == nil {
		base = IdentityCurve
	}
	points := tc.Points
	if points == nil {
		points = IdentityCurve
	}

	var pointLUT, paramLUT [256]float64
	pc := NewCurve(points, Natural)
	bc := NewCurve(base, Natural)
	for i := 0; i < 256; i++ {
		x := float64(i)
		pointLUT[i] = clamp(pc.Evaluate(x), 0, 255)
		paramLUT[i] = clamp(AdjustTone(x, clamp(bc.Evaluate(x), 0, 255), tc.Tone), 0, 255)
	}

	switch tc.Mode {
	case PointOnly:
		return pointLUT
	case ParametricOnly:
		return paramLUT
	}
	var res [256]float64
	for i, v := range paramLUT {
		res[i] = pointLUT[int(v)]
	}
	return res
}

// Compile precomputes the tone mapping and returns an [Adjuster] for it.
func (tc *ToneCurve) Compile() Adjuster {
	if tc.IsIdentity() {
		return identity{}
	}
	return &toneMapper{lut: tc.LUT()}
}

// AdjustRGB implements the [Adjuster] interface.
// For repeated use, [ToneCurve.Compile] is much faster.
func (tc *ToneCurve) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return tc.Compile().AdjustRGB(r, g, b)
}

type toneMapper struct {
	lut [256]float64
}

func (t *toneMapper) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	lum := 0.2126*rf + 0.7152*gf + 0.0722*bf
	idx := int(clamp(lum*255, 0, 255))
	mapped := t.lut[idx] / 255

	ratio := clamp(mapped/max(lum, 1e-8), 0.1, 10)
	rf *= ratio
	gf *= ratio
	bf *= ratio

	gray := (rf + gf + bf) / 3
	rf = gray*(1-saturationProtection) + rf*saturationProtection
	gf = gray*(1-saturationProtection) + gf*saturationProtection
	bf = gray*(1-saturationProtection) + bf*saturationProtection

	return unitToByte(clamp(rf, 0, 1)), unitToByte(clamp(gf, 0, 1)), unitToByte(clamp(bf, 0, 1))
}
