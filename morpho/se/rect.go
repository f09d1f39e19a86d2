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

// Rect is a width×height rectangle centred on the origin. Both sides are odd.
type Rect struct {
	Width, Height int
}

// NewRect returns the centred rectangle of the given odd size.
func NewRect(width, height int) (Rect, error) {
	r := Rect{Width: width, Height: height}
	if err := r.validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

func (r Rect) validate() error {
	if r.Width <= 0 || r.Height <= 0 || r.Width%2 == 0 || r.Height%2 == 0 {
		return fmt.Errorf("%w: rectangle %dx%d must have odd positive sides", ErrInvalidShape, r.Width, r.Height)
	}
	return nil
}

// Square returns the centred square of side 2r+1.
func Square(r int) Rect {
	r = max(r, 0)
	return Rect{Width: 2*r + 1, Height: 2*r + 1}
}

func (r Rect) RadialExtent() int {
	ex, ey := r.Extent()
	return max(ex, ey)
}

func (r Rect) Extent() (ex, ey int) { return r.Width / 2, r.Height / 2 }

func (r Rect) InputRegion(roi geom.Box) geom.Box  { return inflate(roi, r) }
func (r Rect) OutputRegion(roi geom.Box) geom.Box { return shrink(roi, r) }

func (r Rect) IsDecomposable() bool { return true }
func (r Rect) IsIncremental() bool  { return true }

// Decompose returns a horizontal and a vertical line. Identity lines are
// kept so that the decomposition always has two elements.
func (r Rect) Decompose() ([]PeriodicLine, error) {
	ex, ey := r.Extent()
	return []PeriodicLine{Horizontal(ex), Vertical(ey)}, nil
}

func (r Rect) Offsets() []geom.Point {
	ex, ey := r.Extent()
	pts := make([]geom.Point, 0, r.Width*r.Height)
	for y := -ey; y <= ey; y++ {
		for x := -ex; x <= ex; x++ {
			pts = append(pts, geom.Pt(x, y))
		}
	}
	return pts
}

func (r Rect) String() string {
	return fmt.Sprintf("rect(%dx%d)", r.Width, r.Height)
}
