// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package se

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/ajroetker/go-morpho/morpho/geom"
)

// Approximation selects how a Disc is represented.
type Approximation uint8

const (
	// Exact keeps the Euclidean pixel set. It is evaluated by offset
	// accumulation and cannot be decomposed.
	Exact Approximation = iota
	// EightLines approximates the disc by the Minkowski sum of periodic
	// lines along 0°, 90°, ±45° and ±(arctan ½) directions.
	EightLines
)

func (a Approximation) String() string {
	switch a {
	case Exact:
		return "exact"
	case EightLines:
		return "eight-lines"
	default:
		return fmt.Sprintf("Approximation(%d)", uint8(a))
	}
}

// Linear fits of the coefficients minimising the pixel difference with the
// Euclidean disc, found by brute force over radii 1 to 199.
const (
	coeffA0 float32 = 0.22498089194617754
	coeffB0 float32 = -0.74997778133276127
	coeffA2 float32 = 0.092868889904065763
	coeffB2 float32 = 0.03471904979442568
)

// Coefficients are the repetitions of the three line groups of an
// eight-line disc: K0 for the axis lines, K1 for the diagonals and K2 for
// the four lines of slope ±2 and ±½. They satisfy K0 + 2·K1 + 6·K2 = r.
type Coefficients struct {
	K0, K1, K2 int
}

// Extent returns the radial extent reached by the decomposition.
func (c Coefficients) Extent() int {
	return c.K0 + 2*c.K1 + 6*c.K2
}

// DiscCoefficients returns the eight-line decomposition of a disc of
// integer radius r. Small radii use the parity rule for K0 so that the
// extent is reached exactly.
func DiscCoefficients(r int) Coefficients {
	if r <= 0 {
		return Coefficients{}
	}
	var c Coefficients
	if r < 11 {
		c.K0 = 1 + (r+1)%2
	} else {
		c.K0 = roundf(float32(coeffA0*float32(r)) + coeffB0)
	}
	if r >= 7 {
		c.K2 = roundf(float32(coeffA2*float32(r)) + coeffB2)
	}
	if res := r - c.K0 - 6*c.K2; res > 0 {
		c.K1 = res / 2
		c.K0 += res % 2
	}
	return c
}

func roundf(v float32) int {
	return int(math.Round(float64(v)))
}

// Lines returns the periodic lines of the decomposition in a fixed order:
// axis lines, diagonals, then the four slanted lines. Zero coefficients
// contribute no line.
func (c Coefficients) Lines() []PeriodicLine {
	var lines []PeriodicLine
	add := func(k int, dirs ...geom.Point) {
		if k <= 0 {
			return
		}
		for _, d := range dirs {
			lines = append(lines, PeriodicLine{Dir: d, K: k})
		}
	}
	add(c.K0, geom.Pt(0, 1), geom.Pt(1, 0))
	add(c.K1, geom.Pt(1, 1), geom.Pt(-1, 1))
	add(c.K2, geom.Pt(1, 2), geom.Pt(2, 1), geom.Pt(-2, 1), geom.Pt(-1, 2))
	return lines
}

type discLines struct {
	coeffs Coefficients
	lines  []PeriodicLine
}

// Disc is a flat disc centred on the origin.
//
// The decomposition and the pixel set are computed on first use and
// published once; concurrent first callers all observe the same value. A
// Disc must not be copied after first use.
type Disc struct {
	radius float64
	approx Approximation

	lines  atomic.Pointer[discLines]
	pixels atomic.Pointer[[]geom.Point]
}

// NewDisc returns a disc of the given radius. Only the integer part of the
// radius bounds the pixel set; the fractional part widens the Euclidean
// test of Exact discs.
func NewDisc(radius float64, approx Approximation) (*Disc, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return nil, fmt.Errorf("%w: disc radius %v", ErrInvalidShape, radius)
	}
	if approx != Exact && approx != EightLines {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedApproximation, approx)
	}
	return &Disc{radius: radius, approx: approx}, nil
}

func (d *Disc) validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil disc", ErrInvalidShape)
	}
	return nil
}

func (d *Disc) Radius() float64              { return d.radius }
func (d *Disc) Approximation() Approximation { return d.approx }

func (d *Disc) RadialExtent() int { return int(d.radius) }

func (d *Disc) Extent() (ex, ey int) {
	r := d.RadialExtent()
	return r, r
}

func (d *Disc) InputRegion(roi geom.Box) geom.Box  { return inflate(roi, d) }
func (d *Disc) OutputRegion(roi geom.Box) geom.Box { return shrink(roi, d) }

func (d *Disc) IsDecomposable() bool { return d.approx == EightLines }

// IsIncremental matches IsDecomposable: only eight-line discs report it.
func (d *Disc) IsIncremental() bool { return d.approx == EightLines }

// Coefficients returns the eight-line coefficients of the disc.
func (d *Disc) Coefficients() (Coefficients, error) {
	c, err := d.decomposition()
	if err != nil {
		return Coefficients{}, err
	}
	return c.coeffs, nil
}

// Decompose returns the eight lines of an EightLines disc. It fails with
// ErrNotDecomposable for Exact discs.
func (d *Disc) Decompose() ([]PeriodicLine, error) {
	c, err := d.decomposition()
	if err != nil {
		return nil, err
	}
	return slices.Clone(c.lines), nil
}

func (d *Disc) decomposition() (*discLines, error) {
	switch d.approx {
	case EightLines:
	case Exact:
		return nil, fmt.Errorf("%w: exact disc of radius %v", ErrNotDecomposable, d.radius)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedApproximation, d.approx)
	}
	if c := d.lines.Load(); c != nil {
		return c, nil
	}
	coeffs := DiscCoefficients(d.RadialExtent())
	d.lines.CompareAndSwap(nil, &discLines{coeffs: coeffs, lines: coeffs.Lines()})
	return d.lines.Load(), nil
}

// Offsets returns the pixel set of the disc. For Exact discs it is
// {(x, y) : x² + y² <= r²}; for EightLines discs it is the polygon obtained
// as the Minkowski sum of the decomposition, so that offset accumulation
// and line decomposition compute the same dilation.
func (d *Disc) Offsets() []geom.Point {
	if p := d.pixels.Load(); p != nil {
		return slices.Clone(*p)
	}
	var pts []geom.Point
	if d.approx == EightLines {
		pts = MinkowskiSum(DiscCoefficients(d.RadialExtent()).Lines())
	} else {
		pts = EuclideanDisc(d.radius)
	}
	d.pixels.CompareAndSwap(nil, &pts)
	return slices.Clone(*d.pixels.Load())
}

func (d *Disc) String() string {
	return fmt.Sprintf("disc(r=%v, %v)", d.radius, d.approx)
}

// EuclideanDisc returns {(x, y) : x² + y² <= r²} within [-⌊r⌋, ⌊r⌋]²,
// sorted row-major.
func EuclideanDisc(r float64) []geom.Point {
	n := int(r)
	r2 := r * r
	pts := make([]geom.Point, 0, (2*n+1)*(2*n+1))
	for y := -n; y <= n; y++ {
		for x := -n; x <= n; x++ {
			if float64(x*x+y*y) <= r2 {
				pts = append(pts, geom.Pt(x, y))
			}
		}
	}
	return pts
}

// ApproximationError counts the pixels of [-r, r]² on which the eight-line
// disc of radius r and the Euclidean disc disagree.
func ApproximationError(r int) int {
	poly := make(map[geom.Point]bool)
	for _, p := range MinkowskiSum(DiscCoefficients(r).Lines()) {
		poly[p] = true
	}
	r2 := r * r
	n := 0
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if (x*x+y*y <= r2) != poly[geom.Pt(x, y)] {
				n++
			}
		}
	}
	return n
}
