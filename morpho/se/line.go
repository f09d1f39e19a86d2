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

	"github.com/ajroetker/go-morpho/morpho/geom"
)

// PeriodicLine is the symmetric window {i·Dir : -K <= i <= K}.
// K = 0 is the identity. The step Dir does not need to be minimal: a step
// of (0, 2) is a vertical line with period 2.
type PeriodicLine struct {
	Dir geom.Point
	K   int
}

// NewPeriodicLine returns the line of 2k+1 samples along dir. The direction
// is normalised so that Dir.Y > 0, or Dir.Y == 0 and Dir.X > 0; both signs
// describe the same symmetric set.
func NewPeriodicLine(dir geom.Point, k int) (PeriodicLine, error) {
	if err := (PeriodicLine{Dir: dir, K: k}).validate(); err != nil {
		return PeriodicLine{}, err
	}
	if dir.Y < 0 || (dir.Y == 0 && dir.X < 0) {
		dir = dir.Neg()
	}
	return PeriodicLine{Dir: dir, K: k}, nil
}

func (l PeriodicLine) validate() error {
	if l.Dir.IsZero() {
		return fmt.Errorf("%w: periodic line with a zero step", ErrInvalidShape)
	}
	if l.K < 0 {
		return fmt.Errorf("%w: periodic line with k=%d", ErrInvalidShape, l.K)
	}
	return nil
}

// Horizontal returns the horizontal line of 2k+1 consecutive pixels.
func Horizontal(k int) PeriodicLine {
	return PeriodicLine{Dir: geom.Pt(1, 0), K: max(k, 0)}
}

// Vertical returns the vertical line of 2k+1 consecutive pixels.
func Vertical(k int) PeriodicLine {
	return PeriodicLine{Dir: geom.Pt(0, 1), K: max(k, 0)}
}

// IsIdentity reports whether dilating by l leaves an image unchanged.
func (l PeriodicLine) IsIdentity() bool { return l.K == 0 }

// IsHorizontal reports whether l is a row line.
func (l PeriodicLine) IsHorizontal() bool { return l.Dir.Y == 0 && l.Dir.X != 0 }

// IsVertical reports whether l is a column line.
func (l PeriodicLine) IsVertical() bool { return l.Dir.X == 0 && l.Dir.Y != 0 }

// Period is the spacing of the samples of an axis-aligned line.
func (l PeriodicLine) Period() int {
	return max(abs(l.Dir.X), abs(l.Dir.Y))
}

func (l PeriodicLine) RadialExtent() int {
	ex, ey := l.Extent()
	return max(ex, ey)
}

func (l PeriodicLine) Extent() (ex, ey int) {
	return l.K * abs(l.Dir.X), l.K * abs(l.Dir.Y)
}

func (l PeriodicLine) InputRegion(roi geom.Box) geom.Box  { return inflate(roi, l) }
func (l PeriodicLine) OutputRegion(roi geom.Box) geom.Box { return shrink(roi, l) }

// IsDecomposable is true: a line decomposes into itself.
func (l PeriodicLine) IsDecomposable() bool { return true }
func (l PeriodicLine) IsIncremental() bool  { return false }

func (l PeriodicLine) Decompose() ([]PeriodicLine, error) {
	return []PeriodicLine{l}, nil
}

func (l PeriodicLine) Offsets() []geom.Point {
	pts := make([]geom.Point, 0, 2*l.K+1)
	for i := -l.K; i <= l.K; i++ {
		pts = append(pts, l.Dir.Mul(i))
	}
	sortPoints(pts)
	return pts
}

func (l PeriodicLine) String() string {
	return fmt.Sprintf("line%v×%d", l.Dir, l.K)
}
