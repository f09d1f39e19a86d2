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
	"slices"

	"github.com/ajroetker/go-morpho/morpho/geom"
)

// Mask is an arbitrary footprint given as an odd-sized grid whose centre
// cell is the origin.
type Mask struct {
	offsets []geom.Point
	ex, ey  int
}

// NewMask builds a mask from rows of equal, odd length. The number of rows
// must be odd too. Set cells become offsets.
func NewMask(rows [][]bool) (*Mask, error) {
	h := len(rows)
	if h == 0 || h%2 == 0 {
		return nil, fmt.Errorf("%w: mask needs an odd number of rows, got %d", ErrInvalidShape, h)
	}
	w := len(rows[0])
	if w%2 == 0 {
		return nil, fmt.Errorf("%w: mask needs an odd width, got %d", ErrInvalidShape, w)
	}
	m := &Mask{}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: mask row %d has %d cells, want %d", ErrInvalidShape, y, len(row), w)
		}
		for x, set := range row {
			if set {
				m.offsets = append(m.offsets, geom.Pt(x-w/2, y-h/2))
			}
		}
	}
	m.ex, m.ey = extentOf(m.offsets)
	return m, nil
}

// ParseMask builds a mask from text rows where '#', 'x', 'X' and '1' mark
// set cells and any other rune an unset cell.
func ParseMask(rows ...string) (*Mask, error) {
	grid := make([][]bool, len(rows))
	for y, s := range rows {
		for _, c := range s {
			grid[y] = append(grid[y], c == '#' || c == 'x' || c == 'X' || c == '1')
		}
	}
	return NewMask(grid)
}

// MaskFromOffsets builds a mask from an explicit offset list. Duplicates
// are removed.
func MaskFromOffsets(offsets []geom.Point) *Mask {
	pts := slices.Clone(offsets)
	sortPoints(pts)
	pts = slices.Compact(pts)
	m := &Mask{offsets: pts}
	m.ex, m.ey = extentOf(pts)
	return m
}

func (m *Mask) validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mask", ErrInvalidShape)
	}
	return nil
}

func (m *Mask) RadialExtent() int { return max(m.ex, m.ey) }

func (m *Mask) Extent() (ex, ey int) { return m.ex, m.ey }

func (m *Mask) InputRegion(roi geom.Box) geom.Box  { return inflate(roi, m) }
func (m *Mask) OutputRegion(roi geom.Box) geom.Box { return shrink(roi, m) }

func (m *Mask) IsDecomposable() bool { return false }
func (m *Mask) IsIncremental() bool  { return true }

func (m *Mask) Decompose() ([]PeriodicLine, error) {
	return nil, fmt.Errorf("%w: mask of %d offsets", ErrNotDecomposable, len(m.offsets))
}

func (m *Mask) Offsets() []geom.Point { return slices.Clone(m.offsets) }

// Len returns the number of offsets.
func (m *Mask) Len() int { return len(m.offsets) }

func (m *Mask) String() string {
	return fmt.Sprintf("mask(%dx%d, %d px)", 2*m.ex+1, 2*m.ey+1, len(m.offsets))
}
