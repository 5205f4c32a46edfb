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
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestLUT3DIdentity(t *testing.T) {
	// with 18 grid points, every grid point is an integer sample value
	lut := BakeLUT3D(identity{}, 18)
	for r := 0; r < 256; r += 7 {
		for g := 0; g < 256; g += 11 {
			for b := 0; b < 256; b += 5 {
				r2, g2, b2 := lut.AdjustRGB(uint8(r), uint8(g), uint8(b))
				if int(r2) != r || int(g2) != g || int(b2) != b {
					t.Fatalf("AdjustRGB(%d, %d, %d) = %d %d %d", r, g, b, r2, g2, b2)
				}
			}
		}
	}
}

func TestLUT3DTetrahedra(t *testing.T) {
	// an affine map is reproduced exactly in every tetrahedron
	affine := func(c RGB) RGB {
		return RGB{
			R: 0.1 + 0.5*c.R + 0.2*c.G + 0.1*c.B,
			G: 0.3*c.R + 0.4*c.G + 0.2*c.B,
			B: 0.05 + 0.1*c.R + 0.1*c.G + 0.7*c.B,
		}
	}
	lut := &LUT3D{Size: 2, Data: make([]float64, 8*3)}
	for ri := 0; ri < 2; ri++ {
		for gi := 0; gi < 2; gi++ {
			for bi := 0; bi < 2; bi++ {
				c := affine(RGB{float64(ri), float64(gi), float64(bi)})
				k := ((ri*2+gi)*2 + bi) * 3
				lut.Data[k], lut.Data[k+1], lut.Data[k+2] = c.R, c.G, c.B
			}
		}
	}

	inputs := []RGB{
		{0.6, 0.3, 0.1}, // r > g > b
		{0.6, 0.1, 0.3}, // r > b > g
		{0.3, 0.1, 0.6}, // b > r > g
		{0.3, 0.6, 0.1}, // g > r > b
		{0.1, 0.6, 0.3}, // g > b > r
		{0.1, 0.3, 0.6}, // b > g > r
		{0.5, 0.5, 0.5},
		{1, 1, 1},
	}
	for _, c := range inputs {
		got := lut.Lookup(c)
		want := affine(c)
		if math.Abs(got.R-want.R) > 1e-12 || math.Abs(got.G-want.G) > 1e-12 ||
			math.Abs(got.B-want.B) > 1e-12 {
			t.Errorf("Lookup(%v) = %v, want %v", c, got, want)
		}
	}

	// inputs are clamped to the unit cube
	if got, want := lut.Lookup(RGB{-1, 2, 0.5}), lut.Lookup(RGB{0, 1, 0.5}); got != want {
		t.Errorf("Lookup outside the cube = %v, want %v", got, want)
	}
}

func TestLUT3DMatchesAdjuster(t *testing.T) {
	cc := ParseChannelCurves("0,0;64,40;192,220;255,255", "", "", "", CatmullRom)
	adj := Chain{cc.Compile(), &LevelsParams{InputWhite: 240, InputMidtones: 1.1, OutputWhite: 255}}
	lut := BakeLUT3D(adj, 33)
	for _, c := range [][3]uint8{{0, 0, 0}, {255, 255, 255}, {10, 100, 200}, {128, 64, 32}} {
		r1, g1, b1 := adj.AdjustRGB(c[0], c[1], c[2])
		r2, g2, b2 := lut.AdjustRGB(c[0], c[1], c[2])
		if absDiff(r1, r2) > 3 || absDiff(g1, g2) > 3 || absDiff(b1, b2) > 3 {
			t.Errorf("%v: adjuster %d %d %d, LUT %d %d %d", c, r1, g1, b1, r2, g2, b2)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestBakeLUT3DSize(t *testing.T) {
	if n := BakeLUT3D(identity{}, 0).Size; n != MinLUTSize {
		t.Errorf("size 0 gives %d", n)
	}
	if n := BakeLUT3D(identity{}, 1000).Size; n != MaxLUTSize {
		t.Errorf("size 1000 gives %d", n)
	}
}

func TestWriteCube(t *testing.T) {
	lut := BakeLUT3D(identity{}, 2)
	buf := &bytes.Buffer{}
	if err := lut.WriteCube(buf, "test"); err != nil {
		t.Fatal(err)
	}

	var data []string
	header := map[string]bool{}
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if c := line[0]; c >= 'A' && c <= 'Z' {
			header[strings.Fields(line)[0]] = true
			continue
		}
		data = append(data, line)
	}
	for _, key := range []string{"TITLE", "LUT_3D_SIZE", "DOMAIN_MIN", "DOMAIN_MAX"} {
		if !header[key] {
			t.Errorf("missing %s", key)
		}
	}
	if len(data) != 8 {
		t.Fatalf("got %d entries, want 8", len(data))
	}
	// red varies fastest
	if data[1] != "1.000000 0.000000 0.000000" {
		t.Errorf("second entry = %q", data[1])
	}
	if data[2] != "0.000000 1.000000 0.000000" {
		t.Errorf("third entry = %q", data[2])
	}
}
