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

import "testing"

func TestChannelCurvesIdentity(t *testing.T) {
	cc := ParseChannelCurves("", "0,0;255,255", "", "", CatmullRom)
	adj := cc.Compile()
	for v := 0; v < 256; v++ {
		c := uint8(v)
		r, g, b := adj.AdjustRGB(c, 255-c, c/2)
		if r != c || g != 255-c || b != c/2 {
			t.Fatalf("AdjustRGB(%d, %d, %d) = %d %d %d", c, 255-c, c/2, r, g, b)
		}
	}
}

func TestChannelCurvesOrder(t *testing.T) {
	// the master curve inverts, the red curve then halves the result
	cc := ParseChannelCurves("0,255;255,0", "0,0;255,127.5", "", "", Linear)
	adj := cc.Compile()
	r, g, b := adj.AdjustRGB(255, 0, 55)
	if r != 0 || g != 255 || b != 200 {
		t.Errorf("AdjustRGB(255, 0, 55) = %d %d %d, want 0 255 200", r, g, b)
	}
	r, _, _ = adj.AdjustRGB(0, 0, 0)
	if r != 128 {
		t.Errorf("AdjustRGB(0, 0, 0): red = %d, want 128", r)
	}

	if r2, g2, b2 := cc.AdjustRGB(255, 0, 55); r2 != 0 || g2 != 255 || b2 != 200 {
		t.Errorf("uncompiled AdjustRGB(255, 0, 55) = %d %d %d", r2, g2, b2)
	}
}

func TestChannelCurvesSingleChannel(t *testing.T) {
	cc := &ChannelCurves{Blue: ParseCurveSpec("0,40;255,255"), Interp: Natural}
	r, g, b := cc.Compile().AdjustRGB(0, 0, 0)
	if r != 0 || g != 0 || b != 40 {
		t.Errorf("AdjustRGB(0, 0, 0) = %d %d %d, want 0 0 40", r, g, b)
	}
}
