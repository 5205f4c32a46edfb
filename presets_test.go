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
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	if len(names) != len(builtinPresets) {
		t.Fatalf("got %d names, want %d", len(names), len(builtinPresets))
	}
	if !slices.IsSorted(names) {
		t.Errorf("names are not sorted: %v", names)
	}
	for _, name := range names {
		p, ok := LookupPreset(name)
		if !ok {
			t.Fatalf("preset %q not found", name)
		}
		if p.Points[0].X != 0 || p.Points[len(p.Points)-1].X != 255 {
			t.Errorf("%s: invalid curve %s", name, p.Points)
		}
	}
}

func TestLookupPresetCopy(t *testing.T) {
	p, ok := LookupPreset("High Contrast")
	if !ok {
		t.Fatal("preset not found")
	}
	p.Points[1].Y = 0
	q, _ := LookupPreset("High Contrast")
	if q.Points[1].Y != 25 {
		t.Error("LookupPreset returned shared control points")
	}
	if _, ok := LookupPreset("no such preset"); ok {
		t.Error("unknown preset found")
	}
}

func TestPresetCurves(t *testing.T) {
	p, _ := LookupPreset("Portrait")
	adj := p.Compile(CatmullRom)
	r, g, b := adj.AdjustRGB(0, 0, 0)
	if r != 15 || g != 0 || b != 0 {
		t.Errorf("AdjustRGB(0, 0, 0) = %d %d %d, want 15 0 0", r, g, b)
	}

	p.Strength = 0
	adj = p.Compile(CatmullRom)
	for _, v := range []uint8{0, 64, 200, 255} {
		if r, _, _ := adj.AdjustRGB(v, v, v); r != v {
			t.Errorf("strength 0: AdjustRGB(%d) = %d", v, r)
		}
	}

	p.Strength = 50
	adj = p.Compile(Linear)
	if r, g, _ := adj.AdjustRGB(0, 0, 0); r != 8 || g != 0 {
		t.Errorf("strength 50: AdjustRGB(0, 0, 0) = %d %d", r, g)
	}
	if cc := p.Curves(Linear); cc.RGB != nil || cc.Red[0] != (Point{0, 15}) {
		t.Errorf("unexpected curves %+v", cc)
	}
}

func TestLoadPresets(t *testing.T) {
	in := `presets:
  - name: Warm Shadows
    description: lifts the red shadows
    points: "0,20;64,80;255,255"
    channel: R
    strength: 80
  - name: Flat
    points: "0,30;255,225"
`
	list, err := LoadPresets(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []*Preset{
		{
			Name:        "Warm Shadows",
			Description: "lifts the red shadows",
			Points:      CurveSpec{{0, 20}, {64, 80}, {255, 255}},
			Channel:     ChannelRed,
			Strength:    80,
		},
		{
			Name:     "Flat",
			Points:   CurveSpec{{0, 30}, {255, 225}},
			Channel:  ChannelRGB,
			Strength: 100,
		},
	}
	if d := cmp.Diff(want, list); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}

	// JSON is valid YAML
	list, err = LoadPresets(strings.NewReader(`{"presets": [{"name": "J", "points": "0,0;255,200"}]}`))
	if err != nil || len(list) != 1 || list[0].Points[1].Y != 200 {
		t.Errorf("JSON input: %v, %v", list, err)
	}

	list, err = LoadPresets(strings.NewReader(""))
	if err != nil || len(list) != 0 {
		t.Errorf("empty input: %v, %v", list, err)
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	tests := []string{
		"presets:\n  - points: \"0,0;255,255\"\n",
		"presets:\n  - name: X\n    channel: Luminance\n",
		"presets:\n  - name: X\n    channel: Q\n",
	}
	for _, in := range tests {
		_, err := LoadPresets(strings.NewReader(in))
		if !errors.Is(err, errPresetFormat) {
			t.Errorf("%q: got error %v", in, err)
		}
	}
	if _, err := LoadPresets(strings.NewReader("presets: [")); err == nil {
		t.Error("malformed YAML: expected an error")
	}
}
