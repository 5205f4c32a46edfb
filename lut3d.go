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
	"fmt"
	"io"

	"github.com/anthonynsimon/bild/parallel"
)

// LUT3D is a colour lookup table sampled on a regular RGB grid.
//
// Data holds Size*Size*Size entries of three values in [0, 1].  The red
// index varies slowest and the blue index fastest.
type LUT3D struct {
	Size int
	Data []float64
}

// Limits for the grid size of a LUT3D.
const (
	MinLUTSize = 2
	MaxLUTSize = 129
)

// BakeLUT3D samples adj on a size×size×size grid.  The resulting table
// can be used instead of adj, which is useful for previews when adj is
// expensive to evaluate.  The size is clamped to [MinLUTSize, MaxLUTSize].
func BakeLUT3D(adj Adjuster, size int) *LUT3D {
	size = max(MinLUTSize, min(size, MaxLUTSize))
	data := make([]float64, size*size*size*3)
	scale := 255 / float64(size-1)
	parallel.Line(size, func(start, end int) {
		for ri := start; ri < end; ri++ {
			r := toByte(float64(ri) * scale)
			for gi := 0; gi < size; gi++ {
				g := toByte(float64(gi) * scale)
				for bi := 0; bi < size; bi++ {
					b := toByte(float64(bi) * scale)
					r2, g2, b2 := adj.AdjustRGB(r, g, b)
					k := ((ri*size+gi)*size + bi) * 3
					data[k] = float64(r2) / 255
					data[k+1] = float64(g2) / 255
					data[k+2] = float64(b2) / 255
				}
			}
		}
	})
	return &LUT3D{Size: size, Data: data}
}

// AdjustRGB implements the [Adjuster] interface, using tetrahedral
// interpolation between the grid points.
func (l *LUT3D) AdjustRGB(r, g, b uint8) (uint8, uint8, uint8) {
	out := l.Lookup(RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255})
	return unitToByte(out.R), unitToByte(out.G), unitToByte(out.B)
}

// Lookup interpolates the table at c.  The components of c are clamped
// to [0, 1].
func (l *LUT3D) Lookup(c RGB) RGB {
	n := l.Size
	if n < 2 || len(l.Data) < n*n*n*3 {
		return c
	}

	scale := float64(n - 1)
	rPos := clampParam(c.R, 0, 1) * scale
	gPos := clampParam(c.G, 0, 1) * scale
	bPos := clampParam(c.B, 0, 1) * scale

	ri := min(int(rPos), n-2)
	gi := min(int(gPos), n-2)
	bi := min(int(bPos), n-2)

	fr := clamp(rPos-float64(ri), 0, 1)
	fg := clamp(gPos-float64(gi), 0, 1)
	fb := clamp(bPos-float64(bi), 0, 1)

	const bStride = 3
	gStride := n * bStride
	rStride := n * gStride
	c000 := ri*rStride + gi*gStride + bi*bStride
	c111 := c000 + rStride + gStride + bStride

	// Each tetrahedron is a path from c000 to c111 along the cube edges,
	// visiting the axes in order of decreasing fractional part.
	var c1, c2 int
	var w0, w1, w2, w3 float64
	switch {
	case fr > fg && fg > fb:
		c1, c2 = c000+rStride, c000+rStride+gStride
		w0, w1, w2, w3 = 1-fr, fr-fg, fg-fb, fb
	case fr > fg && fr > fb:
		c1, c2 = c000+rStride, c000+rStride+bStride
		w0, w1, w2, w3 = 1-fr, fr-fb, fb-fg, fg
	case fr > fg:
		c1, c2 = c000+bStride, c000+rStride+bStride
		w0, w1, w2, w3 = 1-fb, fb-fr, fr-fg, fg
	case fr > fb:
		c1, c2 = c000+gStride, c000+rStride+gStride
		w0, w1, w2, w3 = 1-fg, fg-fr, fr-fb, fb
	case fg > fb:
		c1, c2 = c000+gStride, c000+gStride+bStride
		w0, w1, w2, w3 = 1-fg, fg-fb, fb-fr, fr
	default:
		c1, c2 = c000+bStride, c000+gStride+bStride
		w0, w1, w2, w3 = 1-fb, fb-fg, fg-fr, fr
	}

	d := l.Data
	var out [3]float64
	for i := range out {
		out[i] = w0*d[c000+i] + w1*d[c1+i] + w2*d[c2+i] + w3*d[c111+i]
	}
	return RGB{out[0], out[1], out[2]}
}

// WriteCube writes the table in the ".cube" text format understood by
// most colour grading software.
func (l *LUT3D) WriteCube(w io.Writer, title string) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", title)
	}
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", l.Size)
	fmt.Fprintln(bw, "DOMAIN_MIN 0.0 0.0 0.0")
	fmt.Fprintln(bw, "DOMAIN_MAX 1.0 1.0 1.0")

	// .cube files list the entries with red varying fastest
	n := l.Size
	for bi := 0; bi < n; bi++ {
		for gi := 0; gi < n; gi++ {
			for ri := 0; ri < n; ri++ {
				k := ((ri*n+gi)*n + bi) * 3
				fmt.Fprintf(bw, "%.6f %.6f %.6f\n", l.Data[k], l.Data[k+1], l.Data[k+2])
			}
		}
	}
	return bw.Flush()
}
