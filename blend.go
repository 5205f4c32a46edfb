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
	"math"
)

// RGB is a colour with normalised components in [0, 1].
type RGB struct {
	R, G, B float64
}

// BlendMode selects the compositing operator used to combine an original
// colour (base) with an adjusted colour (overlay).
type BlendMode int

// The supported blend modes.
const (
	Normal BlendMode = iota
	Multiply
	Screen
	Overlay
	SoftLight
	HardLight
	ColorDodge
	ColorBurn
	numBlendModes
)

var blendModeNames = [numBlendModes]string{
	"normal", "multiply", "screen", "overlay",
	"soft_light", "hard_light", "color_dodge", "color_burn",
}

func (m BlendMode) String() string {
	if m >= 0 && m < numBlendModes {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode converts a blend mode name like "soft_light" into a
// BlendMode.  The empty string gives Normal.
func ParseBlendMode(name string) (BlendMode, error) {
	if name == "" {
		return Normal, nil
	}
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", errUnknownBlendMode, name)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (m BlendMode) MarshalText() ([]byte, error) {
	if m < 0 || m >= numBlendModes {
		return nil, fmt.Errorf("%w %d", errUnknownBlendMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// blendEpsilon keeps colour dodge and colour burn away from division by
// zero.
const blendEpsilon = 1e-10

func blendChannel(base, overlay float64, mode BlendMode) float64 {
	switch mode {
	case Multiply:
		return base * overlay
	case Screen:
		return 1 - (1-base)*(1-overlay)
	case Overlay:
		if base < 0.5 {
			return 2 * base * overlay
		}
		return 1 - 2*(1-base)*(1-overlay)
	case SoftLight:
		if overlay < 0.5 {
			return base - (1-2*overlay)*base*(1-base)
		}
		return base + (2*overlay-1)*(math.Sqrt(max(base, 0))-base)
	case HardLight:
		if overlay < 0.5 {
			return 2 * base * overlay
		}
		return 1 - 2*(1-base)*(1-overlay)
	case ColorDodge:
		if overlay >= 1 {
			return overlay
		}
		return base / (1 - overlay + blendEpsilon)
	case ColorBurn:
		if overlay <= 0 {
			return overlay
		}
		return 1 - (1-base)/(overlay+blendEpsilon)
	default:
		return overlay
	}
}

// ApplyBlendMode composites overlay onto base using the given blend mode,
// and then mixes base and the composite according to strength (0 gives
// base, 1 gives the composite).  The result is clamped to [0, 1].
func ApplyBlendMode(base, overlay RGB, mode BlendMode, strength float64) RGB {
	mixed := func(b, o float64) float64 {
		v := blendChannel(b, o, mode)
		return clamp(b*(1-strength)+v*strength, 0, 1)
	}
	return RGB{
		R: mixed(base.R, overlay.R),
		G: mixed(base.G, overlay.G),
		B: mixed(base.B, overlay.B),
	}
}
