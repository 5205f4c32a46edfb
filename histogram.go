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
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"
)

// Histogram counts the pixels of img in 256 bins.  For ChannelRGB the
// average of the three colour channels is used, for ChannelLuminance the
// rounded Rec.601 luminance.  Invalid images give an empty histogram.
//
// The counts of all bins always add up to Width*Height.
func Histogram(img *Image, ch Channel) [256]int {
	var res [256]int
	if img.Check() != nil {
		return res
	}

	var mu sync.Mutex
	parallel.Line(img.Height, func(start, end int) {
		var local [256]int
		c := img.Channels
		for k := start * img.Width; k < end*img.Width; k++ {
			p := img.Pix[k*c : k*c+3 : k*c+3]
			local[histogramBin(p[0], p[1], p[2], ch)]++
		}

		mu.Lock()
		for i, n := range local {
			res[i] += n
		}
		mu.Unlock()
	})
	return res
}

func histogramBin(r, g, b uint8, ch Channel) uint8 {
	switch ch {
	case ChannelRed:
		return r
	case ChannelGreen:
		return g
	case ChannelBlue:
		return b
	case ChannelLuminance:
		return toByte(luma(r, g, b))
	default:
		return uint8((int(r) + int(g) + int(b)) / 3)
	}
}

// HistogramStats summarises a histogram.
type HistogramStats struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median int
	StdDev float64
}

// Stats computes summary statistics of the histogram h.
// For an empty histogram, all fields are zero.
func Stats(h *[256]int) HistogramStats {
	var res HistogramStats
	sum := 0.0
	for i, n := range h {
		if n == 0 {
			continue
		}
		if res.Count == 0 {
			res.Min = i
		}
		res.Max = i
		res.Count += n
		sum += float64(i * n)
	}
	if res.Count == 0 {
		return res
	}
	res.Mean = sum / float64(res.Count)

	half := (res.Count + 1) / 2
	cum := 0
	variance := 0.0
	medianFound := false
	for i, n := range h {
		cum += n
		if !medianFound && cum >= half {
			res.Median = i
			medianFound = true
		}
		d := float64(i) - res.Mean
		variance += d * d * float64(n)
	}
	res.StdDev = math.Sqrt(variance / float64(res.Count))
	return res
}
