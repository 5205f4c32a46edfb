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
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMaskFromValues(t *testing.T) {
	m, err := MaskFromValues(2, 2, []float64{-1, 0.25, math.NaN(), 7})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 0.25, 0, 1}, m.Pix); d != "" {
		t.Errorf("unexpected weights (-want +got):\n%s", d)
	}
	if m.At(1, 0) != 0.25 {
		t.Errorf("At(1, 0) = %g", m.At(1, 0))
	}

	_, err = MaskFromValues(3, 2, make([]float64, 5))
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}
}

func TestMaskInvert(t *testing.T) {
	m, _ := MaskFromValues(3, 1, []float64{0, 0.25, 1})
	inv := m.Invert()
	if d := cmp.Diff([]float64{1, 0.75, 0}, inv.Pix); d != "" {
		t.Errorf("unexpected weights (-want +got):\n%s", d)
	}
	if m.Pix[0] != 0 {
		t.Error("Invert modified the original mask")
	}
}

func TestMaskFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 8, 6))
	copy(gray.Pix, []uint8{0, 51, 255})
	m := MaskFromImage(gray)
	want := []float64{0, 0.2, 1}
	if m.Width != 3 || m.Height != 1 {
		t.Fatalf("mask size %dx%d", m.Width, m.Height)
	}
	for i, w := range want {
		if math.Abs(m.Pix[i]-w) > 1e-12 {
			t.Errorf("weight %d = %g, want %g", i, m.Pix[i], w)
		}
	}
}

func TestLuminanceMask(t *testing.T) {
	img := NewImage(3, 1, 3)
	img.Set(0, 0, 10, 10, 10, 0)
	img.Set(1, 0, 128, 128, 128, 0)
	img.Set(2, 0, 250, 250, 250, 0)
	m, err := LuminanceMask(img, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 1, 0}, m.Pix); d != "" {
		t.Errorf("unexpected weights (-want +got):\n%s", d)
	}

	bad := &Image{Width: 4, Height: 4, Channels: 3, Pix: make([]uint8, 5)}
	if _, err := LuminanceMask(bad, 0, 1); !errors.Is(err, errInvalidImage) {
		t.Errorf("invalid image: got %v, want %v", err, errInvalidImage)
	}
}

func TestMaskBlur(t *testing.T) {
	m, _ := MaskFromValues(4, 1, []float64{0, 0.5, 0.5, 1})
	if d := cmp.Diff(m.Pix, m.Blur(0).Pix); d != "" {
		t.Errorf("Blur(0) changed the mask (-want +got):\n%s", d)
	}

	uniform := NewMask(9, 9)
	if v := uniform.Blur(2).At(4, 4); math.Abs(v-1) > 1.0/255 {
		t.Errorf("uniform mask: centre weight %g after blur", v)
	}

	values := make([]float64, 20*9)
	for i := range values {
		if i%20 >= 10 {
			values[i] = 1
		}
	}
	step, _ := MaskFromValues(20, 9, values)
	blurred := step.Blur(3)
	left, right := blurred.At(9, 4), blurred.At(10, 4)
	if !(left > 0.05 && left < 0.95 && right > 0.05 && right < 0.95) {
		t.Errorf("edge weights %g, %g are not feathered", left, right)
	}
	if left >= right {
		t.Errorf("edge weights %g, %g are not increasing", left, right)
	}
	if far0, far1 := blurred.At(4, 4), blurred.At(15, 4); far0 > 0.05 || far1 < 0.95 {
		t.Errorf("weights away from the edge changed: %g, %g", far0, far1)
	}
}
