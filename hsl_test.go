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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBandWeight(t *testing.T) {
	tests := []struct {
		band Band
		hue  float64
		want float64
	}{
		{Red, 0, 1},
		{Red, 360, 1},
		{Red, 30, 0.5},
		{Red, 61, 0},
		{Red, 180, 0},
		{Blue, 240, 1},
		{Blue, 0, 0},
		{Magenta, 330, 0.5},
	}
	for _, tt := range tests {
		got := BandWeight(tt.band, tt.hue)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("BandWeight(%s, %g) = %g, want %g", tt.band, tt.hue, got, tt.want)
		}
	}
}

func TestBandWeightWraparound(t *testing.T) {
	w359 := BandWeight(Red, 359)
	w1 := BandWeight(Red, 1)
	if w359 < 0.99 {
		t.Errorf("BandWeight(red, 359) = %g, want close to 1", w359)
	}
	if math.Abs(w359-w1) > 1e-12 {
		t.Errorf("BandWeight(red, 359) = %g, BandWeight(red, 1) = %g", w359, w1)
	}
	if w := BandWeight(Red, -1); math.Abs(w-w1) > 1e-12 {
		t.Errorf("BandWeight(red, -1) = %g, want %g", w, w1)
	}
}

func TestHSLConversionRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				h, s, l := rgbToHSL(uint8(r), uint8(g), uint8(b))
				r2, g2, b2 := hslToRGB(h, s, l)
				if int(r2) != r || int(g2) != g || int(b2) != b {
					t.Fatalf("round trip (%d %d %d) -> (%g %g %g) -> (%d %d %d)",
						r, g, b, h, s, l, r2, g2, b2)
				}
			}
		}
	}
}

func TestHSLZeroParams(t *testing.T) {
	p := &HSLParams{}
	for _, c := range [][3]uint8{{255, 0, 0}, {1, 2, 3}, {200, 180, 20}, {128, 128, 128}} {
		r, g, b := p.AdjustRGB(c[0], c[1], c[2])
		if r != c[0] || g != c[1] || b != c[2] {
			t.Errorf("AdjustRGB(%v) = %d %d %d", c, r, g, b)
		}
	}
}

func TestHSLDesaturateRed(t *testing.T) {
	p := &HSLParams{}
	p[Red] = BandAdjust{Saturation: -100}

	r, g, b := p.AdjustRGB(255, 0, 0)
	_, s, _ := rgbToHSL(r, g, b)
	if s > 0.5 {
		t.Errorf("red: saturation after adjustment = %g (%d %d %d)", s, r, g, b)
	}

	r, g, b = p.AdjustRGB(0, 0, 255)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("blue: AdjustRGB = %d %d %d, want 0 0 255", r, g, b)
	}
}

func TestHSLHueShift(t *testing.T) {
	p := &HSLParams{}
	p[Red] = BandAdjust{Hue: 100}
	r, g, b := p.AdjustRGB(255, 0, 0)
	if g < 128 || b != 0 {
		t.Errorf("AdjustRGB(255, 0, 0) = %d %d %d, expected a shift towards yellow", r, g, b)
	}

	// out of range sliders are clamped
	q := &HSLParams{}
	q[Red] = BandAdjust{Hue: 1000}
	r2, g2, b2 := q.AdjustRGB(255, 0, 0)
	if r2 != r || g2 != g || b2 != b {
		t.Errorf("clamped: AdjustRGB = %d %d %d, want %d %d %d", r2, g2, b2, r, g, b)
	}
}

func TestHSLLightness(t *testing.T) {
	p := &HSLParams{}
	for i := range p {
		p[i].Lightness = 100
	}
	r, g, b := p.AdjustRGB(128, 128, 128)
	if r != g || g != b || r <= 128 || r == 255 {
		t.Errorf("AdjustRGB(128, 128, 128) = %d %d %d", r, g, b)
	}

	for i := range p {
		p[i].Lightness = -100
	}
	r, g, b = p.AdjustRGB(128, 128, 128)
	if r != g || g != b || r >= 128 || r == 0 {
		t.Errorf("AdjustRGB(128, 128, 128) = %d %d %d", r, g, b)
	}
}

func TestParseHSLParams(t *testing.T) {
	in := `{"red": {"hue": 0, "saturation": -100, "lightness": 0}, "aqua": {"hue": 12.5}}`
	p, err := ParseHSLParams([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := &HSLParams{}
	want[Red] = BandAdjust{Saturation: -100}
	want[Aqua] = BandAdjust{Hue: 12.5}
	if d := cmp.Diff(want, p); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	q, err := ParseHSLParams(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(p, q); d != "" {
		t.Errorf("round trip changed the parameters (-want +got):\n%s", d)
	}

	_, err = ParseHSLParams([]byte(`{"teal": {"hue": 10}}`))
	if !errors.Is(err, errUnknownBand) {
		t.Errorf("unknown band: got error %v", err)
	}
	_, err = ParseHSLParams([]byte(`[1, 2]`))
	if err == nil {
		t.Error("malformed JSON: expected an error")
	}
}

func TestParseBand(t *testing.T) {
	for b := Red; b < numBands; b++ {
		got, err := ParseBand(b.String())
		if err != nil || got != b {
			t.Errorf("ParseBand(%q) = %v, %v", b.String(), got, err)
		}
	}
	if Purple.Center() != 270 {
		t.Errorf("Purple.Center() = %g", Purple.Center())
	}
}
