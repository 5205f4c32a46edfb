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
	"fmt"
	"math"
)

// Channel selects which part of a colour a levels adjustment or a
// histogram acts on.
type Channel int

// The supported channels.
const (
	ChannelRGB Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
	ChannelLuminance
)

var channelNames = map[Channel]string{
	ChannelRGB:       "RGB",
	ChannelRed:       "R",
	ChannelGreen:     "G",
	ChannelBlue:      "B",
	ChannelLuminance: "Luminance",
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel converts a channel name ("RGB", "R", "G", "B" or
// "Luminance") into a Channel.
func ParseChannel(name string) (Channel, error) {
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", errUnknownChannel, name)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (c Channel) MarshalText() ([]byte, error) {
	name, ok := channelNames[c]
	if !ok {
		return nil, fmt.Errorf("%w %d", errUnknownChannel, int(c))
	}
	return []byte(name), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (c *Channel) UnmarshalText(text []byte) error {
	ch, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// AutoMode selects automatic computation of the input range of a levels
// adjustment from the image histogram.
type AutoMode int

const (
	// AutoOff uses the input range given in the parameters.
	AutoOff AutoMode = iota

	// AutoLevels averages the clipped ranges of the colour channels.
	AutoLevels

	// AutoContrast uses the union of the clipped ranges of the colour
	// channels, so that colours are not shifted.
	AutoContrast
)

// LevelsParams describes a levels adjustment.
type LevelsParams struct {
	Channel       Channel `json:"channel"`
	InputBlack    float64 `json:"input_black"`    // [0, 254]
	InputWhite    float64 `json:"input_white"`    // [1, 255]
	InputMidtones float64 `json:"input_midtones"` // gamma, [0.1, 9.99]
	OutputBlack   float64 `json:"output_black"`   // [0, 254]
	OutputWhite   float64 `json:"output_white"`   // [1, 255]

	// Auto and ClipPercent configure automatic levels, see [LevelsParams.Resolve].
	Auto        AutoMode `json:"-"`
	ClipPercent float64  `json:"clip_percentage,omitempty"`
}

// NewLevelsParams creates a validated levels adjustment.  Values outside
// of the slider ranges are clamped.  If input_white <= input_black or
// output_white <= output_black, an [*InvalidParameterError] is returned.
func NewLevelsParams(ch Channel, inBlack, inWhite, midtones, outBlack, outWhite float64) (*LevelsParams, error) {
	p := &LevelsParams{
		Channel:       ch,
		InputBlack:    inBlack,
		InputWhite:    inWhite,
		InputMidtones: midtones,
		OutputBlack:   outBlack,
		OutputWhite:   outWhite,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.clampRanges()
	return p, nil
}

// DefaultLevelsParams returns the identity levels adjustment for the
// given channel.
func DefaultLevelsParams(ch Channel) *LevelsParams {
	return &LevelsParams{
		Channel:       ch,
		InputWhite:    255,
		InputMidtones: 1,
		OutputWhite:   255,
	}
}

// Validate checks that the input and output ranges are not empty.
func (p *LevelsParams) Validate() error {
	if _, ok := channelNames[p.Channel]; !ok {
		return &InvalidParameterError{
			Field:  "channel",
			Value:  float64(p.Channel),
			Reason: errUnknownChannel.Error(),
		}
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"input_black", p.InputBlack},
		{"input_white", p.InputWhite},
		{"input_midtones", p.InputMidtones},
		{"output_black", p.OutputBlack},
		{"output_white", p.OutputWhite},
	} {
		if math.IsNaN(v.val) {
			return &InvalidParameterError{Field: v.name, Value: v.val, Reason: "not a number"}
		}
	}
	if p.InputWhite <= p.InputBlack {
		return &InvalidParameterError{
			Field:  "input_white",
			Value:  p.InputWhite,
			Reason: fmt.Sprintf("must be greater than input_black (%g)", p.InputBlack),
		}
	}
	if p.OutputWhite <= p.OutputBlack {
		return &InvalidParameterError{
			Field:  "output_white",
			Value:  p.OutputWhite,
			Reason: fmt.Sprintf("must be greater than output_black (%g)", p.OutputBlack),
		}
	}
	return nil
}

func (p *LevelsParams) clampRanges() {
	p.InputBlack = clamp(p.InputBlack, 0, 254)
	p.InputWhite = clamp(p.InputWhite, p.InputBlack+1, 255)
	p.InputMidtones = clamp(p.InputMidtones, 0.1, 9.99)
	p.OutputBlack = clamp(p.OutputBlack, 0, 254)
	p.OutputWhite = clamp(p.OutputWhite, p.OutputBlack+1, 255)
	p.ClipPercent = clampParam(p.ClipPercent, 0, 50)
}

type levelsJSON struct {
	LevelsParams
	AutoLevels   bool `json:"auto_levels"`
	AutoContrast bool `json:"auto_contrast"`
}

// ParseLevelsParams decodes levels parameters from a JSON object with the
// fields "channel", "input_black", "input_white", "input_midtones",
// "output_black" and "output_white".  Omitted fields take their identity
// values.  The boolean fields "auto_levels" and "auto_contrast" together
// with "clip_percentage" request automatic levels.
func ParseLevelsParams(data []byte) (*LevelsParams, error) {
	in := levelsJSON{LevelsParams: *DefaultLevelsParams(ChannelRGB)}
	in.ClipPercent = 0.1
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("tone: levels parameters: %w", err)
	}
	p := in.LevelsParams
	switch {
	case in.AutoLevels:
		p.Auto = AutoLevels
	case in.AutoContrast:
		p.Auto = AutoContrast
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.clampRanges()
	return &p, nil
}

// AdjustChannel maps a single value in [0, 255] through the levels
// curve.  Parameters which fail [LevelsParams.Validate] leave the value
// unchanged (apart from clamping).
func (p *LevelsParams) AdjustChannel(value float64) float64 {
	inRange := p.InputWhite - p.InputBlack
	outRange := p.OutputWhite - p.OutputBlack
	if !(inRange > 0) || !(outRange > 0) {
		return clampParam(value, 0, 255)
	}
	gamma := clampParam(p.InputMidtones, 0.1, 9.99)

	n := clampParam((value-p.InputBlack)/inRange, 0, 1)
	if gamma != 1 {
		n = math.Pow(n, 1/gamma)
	}
	return clamp(n*outRange+p.OutputBlack, 0, 255)
}

// AdjustRGB implements the [Adjuster] interface.
func (p *LevelsParams) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	return p.AdjustPixel(r, g, b)
}

// AdjustPixel applies the levels curve to the channels selected by
// p.Channel.  In Luminance mode, the Rec.601 luminance is adjusted and all
// three channels are scaled by the same ratio.
func (p *LevelsParams) AdjustPixel(r, g, b uint8) (uint8, uint8, uint8) {
	switch p.Channel {
	case ChannelRGB:
		return p.adjust8(r), p.adjust8(g), p.adjust8(b)
	case ChannelRed:
		return p.adjust8(r), g, b
	case ChannelGreen:
		return r, p.adjust8(g), b
	case ChannelBlue:
		return r, g, p.adjust8(b)
	case ChannelLuminance:
		lum := luma(r, g, b)
		ratio := 1.0
		if lum > 0 {
			ratio = p.AdjustChannel(lum) / lum
		}
		return toByte(float64(r) * ratio), toByte(float64(g) * ratio), toByte(float64(b) * ratio)
	}
	return r, g, b
}

func (p *LevelsParams) adjust8(v uint8) uint8 {
	return toByte(p.AdjustChannel(float64(v)))
}

// Resolve returns the parameters to use for img.  If automatic levels
// are requested, the input range is computed from the histogram of img,
// and the midtones are reset to 1.  Otherwise p is returned unchanged.
func (p *LevelsParams) Resolve(img *Image) (*LevelsParams, error) {
	if p.Auto == AutoOff {
		return p, nil
	}
	auto, err := ComputeAutoLevels(img, p.Channel, p.ClipPercent, p.Auto)
	if err != nil {
		return nil, err
	}
	auto.OutputBlack = p.OutputBlack
	auto.OutputWhite = p.OutputWhite
	if err := auto.Validate(); err != nil {
		return nil, err
	}
	return auto, nil
}

// Levels applies a levels adjustment to img.  The parameters are
// validated first, and automatic levels are resolved against img.
// If mask is not nil, the adjustment is mixed with the original image
// according to the mask.
func Levels(img *Image, p *LevelsParams, mask *Mask) (*Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := img.Check(); err != nil {
		return nil, err
	}
	q, err := p.Resolve(img)
	if err != nil {
		return nil, err
	}
	return ApplyMasked(img, q, mask)
}

// ComputeAutoLevels determines the input range of a levels adjustment
// from the histogram of img.  The darkest and the brightest clipPercent
// percent of the pixels are clipped.
func ComputeAutoLevels(img *Image, ch Channel, clipPercent float64, mode AutoMode) (*LevelsParams, error) {
	if err := img.Check(); err != nil {
		return nil, err
	}
	clip := clampParam(clipPercent, 0, 50) / 100

	var lo, hi float64
	if ch == ChannelRGB {
		var los, his [3]float64
		for i, c := range []Channel{ChannelRed, ChannelGreen, ChannelBlue} {
			h := Histogram(img, c)
			los[i], his[i] = clippedRange(&h, clip)
		}
		if mode == AutoContrast {
			lo = min(los[0], los[1], los[2])
			hi = max(his[0], his[1], his[2])
		} else {
			lo = (los[0] + los[1] + los[2]) / 3
			hi = (his[0] + his[1] + his[2]) / 3
		}
	} else {
		h := Histogram(img, ch)
		lo, hi = clippedRange(&h, clip)
	}

	lo = clamp(lo, 0, 254)
	hi = max(lo+1, min(255, hi))
	res := DefaultLevelsParams(ch)
	res.InputBlack = lo
	res.InputWhite = hi
	return res, nil
}

// clippedRange returns the darkest and the brightest bin after a fraction
// clip of the pixels has been discarded at either end.
func clippedRange(h *[256]int, clip float64) (lo, hi float64) {
	total := 0
	for _, n := range h {
		total += n
	}
	if total == 0 {
		return 0, 255
	}
	loCount := clip * float64(total)
	hiCount := (1 - clip) * float64(total)

	lo, hi = -1, 255
	cum := 0
	for i, n := range h {
		cum += n
		if lo < 0 && float64(cum) > loCount {
			lo = float64(i)
		}
		if float64(cum) >= hiCount {
			hi = float64(i)
			break
		}
	}
	return max(lo, 0), hi
}
