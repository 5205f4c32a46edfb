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

// ChannelCurves is a point-curve adjustment with one master curve for all
// three channels and one additional curve per channel.  The master curve
// is applied first.  Nil curves are treated as identity.
type ChannelCurves struct {
	RGB, Red, Green, Blue CurveSpec

	// Interp is the interpolation used for all four curves.  The zero
	// value is Linear; the curve editor uses CatmullRom.
	Interp Interpolation
}

// ParseChannelCurves creates a ChannelCurves value from four point strings
// in the format understood by [ParsePoints].  Empty strings give identity
// curves.
func ParseChannelCurves(rgb, red, green, blue string, interp Interpolation) *ChannelCurves {
	parse := func(s string) CurveSpec {
		if s == "" {
			return nil
		}
		return ParseCurveSpec(s)
	}
	return &ChannelCurves{
		RGB:    parse(rgb),
		Red:    parse(red),
		Green:  parse(green),
		Blue:   parse(blue),
		Interp: interp,
	}
}

// Compile tabulates the curves and returns an [Adjuster] for them.
func (cc *ChannelCurves) Compile() Adjuster {
	return cc.tabulate()
}

func (cc *ChannelCurves) tabulate() *channelLUT {
	var t channelLUT
	for i := 0; i < 256; i++ {
		v := uint8(i)
		t.r[i], t.g[i], t.b[i] = v, v, v
	}
	if cc.RGB != nil && !Sanitize(cc.RGB).IsIdentity() {
		lut := NewCurve(cc.RGB, cc.Interp).LUT()
		t.r, t.g, t.b = lut, lut, lut
	}
	for _, ch := range []struct {
		spec CurveSpec
		dst  *[256]uint8
	}{
		{cc.Red, &t.r},
		{cc.Green, &t.g},
		{cc.Blue, &t.b},
	} {
		if ch.spec == nil || Sanitize(ch.spec).IsIdentity() {
			continue
		}
		lut := NewCurve(ch.spec, cc.Interp).LUT()
		for i, v := range ch.dst {
			ch.dst[i] = lut[v]
		}
	}
	return &t
}

// AdjustRGB implements the [Adjuster] interface.
// For repeated use, [ChannelCurves.Compile] is much faster.
func (cc *ChannelCurves) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return cc.Compile().AdjustRGB(r, g, b)
}

type channelLUT struct {
	r, g, b [256]uint8
}

// fade moves every table entry towards the identity.  s=0 gives the
// identity, s=1 leaves the table unchanged.
func (t *channelLUT) fade(s float64) {
	for _, tab := range []*[256]uint8{&t.r, &t.g, &t.b} {
		for i, v := range tab {
			tab[i] = mix(uint8(i), v, s)
		}
	}
}

func (t *channelLUT) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return t.r[r], t.g[g], t.b[b]
}
