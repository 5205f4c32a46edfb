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
	"fmt"
)

// InvalidParameterError is returned when a parameter set cannot be used,
// for example a levels range with input_white <= input_black.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("tone: invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

// DimensionMismatchError is returned when a mask does not have the same
// dimensions as the image it is applied to.
type DimensionMismatchError struct {
	ImageWidth, ImageHeight int
	MaskWidth, MaskHeight   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("tone: mask is %dx%d, image is %dx%d",
		e.MaskWidth, e.MaskHeight, e.ImageWidth, e.ImageHeight)
}

var (
	errUnknownChannel   = errors.New("unknown levels channel")
	errUnknownBlendMode = errors.New("unknown blend mode")
	errUnknownBand      = errors.New("unknown HSL band")
	errUnknownRegion    = errors.New("unknown grading region")
	errInvalidImage     = errors.New("invalid image buffer")
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampParam is like clamp, but maps NaN to lo.
func clampParam(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	return clamp(v, lo, hi)
}

// toByte rounds a value in [0, 255] to the nearest 8-bit sample.
func toByte(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// unitToByte converts a value in [0, 1] to an 8-bit sample.
func unitToByte(v float64) uint8 {
	return toByte(v * 255)
}
