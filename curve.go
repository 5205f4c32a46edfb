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
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point is a control point of a tone curve.  Both coordinates use the
// 8-bit sample range [0, 255].
type Point struct {
	X, Y float64
}

// CurveSpec is a sanitised list of control points: sorted by strictly
// increasing X, with the first point at X=0 and the last point at X=255.
// Use [Sanitize] to obtain a CurveSpec from arbitrary points.
type CurveSpec []Point

// IdentityCurve is the curve spec which maps every input to itself.
var IdentityCurve = CurveSpec{{0, 0}, {255, 255}}

// Interpolation selects how a [Curve] interpolates between control points.
type Interpolation int

const (
	// Linear joins the control points with straight lines.
	Linear Interpolation = iota

	// CatmullRom uses a cardinal spline with tension 0.3.  This is the
	// interpolation used by the interactive point-curve editor.
	CatmullRom

	// Natural uses a natural cubic spline (zero second derivative at both
	// ends).  This is the interpolation used by the tone-curve engine.
	Natural
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case CatmullRom:
		return "catmull-rom"
	case Natural:
		return "natural"
	default:
		return "Interpolation(" + strconv.Itoa(int(i)) + ")"
	}
}

// catmullRomTension controls how far the tangents of the cardinal spline
// are shortened compared to a plain Catmull-Rom spline.
const catmullRomTension = 0.3

// ParsePoints parses control points from a string.
//
// The canonical format is a semicolon-separated list of "x,y" pairs, for
// example "0,0;64,85;255,245".  A JSON array of pairs, as in "[[0,0],[255,255]]",
// is accepted as well.  Malformed entries are silently dropped.
func ParsePoints(s string) []Point {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var pairs [][]float64
		if err := json.Unmarshal([]byte(s), &pairs); err != nil {
			return nil
		}
		var res []Point
		for _, p := range pairs {
			if len(p) != 2 {
				continue
			}
			res = append(res, Point{p[0], p[1]})
		}
		return res
	}

	var res []Point
	for _, pair := range strings.Split(s, ";") {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			continue
		}
		res = append(res, Point{x, y})
	}
	return res
}

// ParseCurveSpec is a shortcut for Sanitize(ParsePoints(s)).
func ParseCurveSpec(s string) CurveSpec {
	return Sanitize(ParsePoints(s))
}

// Sanitize turns an arbitrary list of points into a valid CurveSpec.
//
// Points with non-finite coordinates are dropped, coordinates are clamped
// to [0, 255], and the points are sorted by X.  If several points share the
// same X, the one which came first in the input is kept.  Missing boundary
// points are added by extending the first and last point horizontally.
// If no usable point remains, [IdentityCurve] is returned.
func Sanitize(points []Point) CurveSpec {
	var res CurveSpec
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		res = append(res, Point{clamp(p.X, 0, 255), clamp(p.Y, 0, 255)})
	}
	if len(res) == 0 {
		return append(CurveSpec(nil), IdentityCurve...)
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].X < res[j].X })

	k := 0
	for i := range res {
		if i > 0 && res[i].X == res[k-1].X {
			continue
		}
		res[k] = res[i]
		k++
	}
	res = res[:k]

	if res[0].X > 0 {
		res = append(CurveSpec{{0, res[0].Y}}, res...)
	}
	if last := res[len(res)-1]; last.X < 255 {
		res = append(res, Point{255, last.Y})
	}
	return res
}

// IsIdentity reports whether the spec is exactly [IdentityCurve].
func (s CurveSpec) IsIdentity() bool {
	return len(s) == 2 && s[0] == IdentityCurve[0] && s[1] == IdentityCurve[1]
}

// String formats the spec in the "x,y;x,y" format understood by [ParsePoints].
func (s CurveSpec) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
	}
	return strings.Join(parts, ";")
}

// Curve is a 1D tone curve through a set of control points.
//
// A Curve is immutable once created and can be evaluated from several
// goroutines concurrently.
type Curve struct {
	points CurveSpec
	interp Interpolation

	// coefficients of the natural spline: on segment i,
	// y = points[i].Y + b[i]*dx + c[i]*dx^2 + d[i]*dx^3
	b, c, d []float64

	// tangent slopes of the cardinal spline at each control point
	m []float64
}

// NewCurve creates a curve through the points of spec.  The spec is
// sanitised first, so any list of points can be used.
func NewCurve(spec CurveSpec, interp Interpolation) *Curve {
	pts := Sanitize(spec)
	c := &Curve{points: pts, interp: interp}
	if len(pts) < 3 {
		return c
	}
	switch interp {
	case Natural:
		c.b, c.c, c.d = naturalSpline(pts)
	case CatmullRom:
		c.m = cardinalTangents(pts, catmullRomTension)
	}
	return c
}

// Points returns the control points of the curve.
func (c *Curve) Points() CurveSpec {
	return append(CurveSpec(nil), c.points...)
}

// Interpolation returns the interpolation method used by the curve.
func (c *Curve) Interpolation() Interpolation {
	return c.interp
}

// Evaluate computes the curve value at x.
//
// Inputs outside the range of the control points are clamped to the
// nearest end point.  The zero Curve is the identity.  The output is not clamped and may leave [0, 255]
// for strongly bent curves.
func (c *Curve) Evaluate(x float64) float64 {
	pts := c.points
	n := len(pts)
	if n == 0 {
		return x
	}
	if x != x || x <= pts[0].X {
		return pts[0].Y
	}
	if x >= pts[n-1].X {
		return pts[n-1].Y
	}

	// find the segment [pts[i].X, pts[i+1].X) containing x
	i := sort.Search(n, func(j int) bool { return pts[j].X > x }) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	p0, p1 := pts[i], pts[i+1]
	h := p1.X - p0.X
	dx := x - p0.X

	switch {
	case c.b != nil:
		return p0.Y + dx*(c.b[i]+dx*(c.c[i]+dx*c.d[i]))
	case c.m != nil:
		t := dx / h
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2
		return h00*p0.Y + h10*h*c.m[i] + h01*p1.Y + h11*h*c.m[i+1]
	default:
		return p0.Y + dx/h*(p1.Y-p0.Y)
	}
}

// LUT tabulates the curve for all 8-bit inputs.  Outputs are clamped to
// [0, 255] and rounded.
func (c *Curve) LUT() [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = toByte(c.Evaluate(float64(i)))
	}
	return lut
}

// naturalSpline computes the coefficients of the natural cubic spline
// through pts, using the Thomas algorithm for the tridiagonal system.
func naturalSpline(pts CurveSpec) (b, c, d []float64) {
	n := len(pts)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = pts[i+1].X - pts[i].X
	}

	alpha := make([]float64, n)
	for i := 1; i < n-1; i++ {
		alpha[i] = 3/h[i]*(pts[i+1].Y-pts[i].Y) - 3/h[i-1]*(pts[i].Y-pts[i-1].Y)
	}

	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1
	for i := 1; i < n-1; i++ {
		l[i] = 2*(pts[i+1].X-pts[i-1].X) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}

	b = make([]float64, n-1)
	c = make([]float64, n)
	d = make([]float64, n-1)
	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (pts[j+1].Y-pts[j].Y)/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}
	return b, c, d
}

// cardinalTangents computes the tangent slopes of a cardinal spline.
// The end points use virtual neighbours obtained by reflecting the
// adjacent control point, which makes the end tangent follow the
// direction of the first and last segment.
func cardinalTangents(pts CurveSpec, tension float64) []float64 {
	n := len(pts)
	at := func(i int) Point {
		switch {
		case i < 0:
			return Point{2*pts[0].X - pts[1].X, 2*pts[0].Y - pts[1].Y}
		case i >= n:
			return Point{2*pts[n-1].X - pts[n-2].X, 2*pts[n-1].Y - pts[n-2].Y}
		default:
			return pts[i]
		}
	}

	m := make([]float64, n)
	for i := range m {
		prev, next := at(i-1), at(i+1)
		m[i] = (1 - tension) * (next.Y - prev.Y) / (next.X - prev.X)
	}
	return m
}
