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

// Package se models flat structuring elements.
//
// A structuring element (SE) is a set of pixel offsets around the origin.
// Besides its offsets, an SE reports how much halo it needs around a region
// of interest, and, when possible, decomposes into periodic lines whose
// successive dilations reproduce it. Line primitives are what the tile
// engine evaluates at a cost per pixel independent of their length.
//
// The supported shapes are:
//
//	PeriodicLine  2k+1 samples spaced by a step vector
//	Rect          odd-sized rectangle, decomposed in two lines
//	Disc          Euclidean disc, exact or approximated by eight lines
//	Mask          arbitrary odd-sized boolean footprint
package se

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-morpho/morpho/geom"
)

var (
	// ErrNotDecomposable is returned by Decompose on an SE without a line
	// decomposition.
	ErrNotDecomposable = errors.New("structuring element is not decomposable")

	// ErrUnsupportedApproximation is returned for a Disc approximation
	// mode other than Exact and EightLines.
	ErrUnsupportedApproximation = errors.New("unsupported disc approximation")

	// ErrInvalidShape is returned by constructors given impossible
	// parameters (negative radius, even mask size, zero step, ...).
	ErrInvalidShape = errors.New("invalid structuring element")
)

// StructuringElement is a flat structuring element.
type StructuringElement interface {
	// RadialExtent is the largest offset coordinate magnitude.
	RadialExtent() int

	// Extent is the largest offset magnitude along x and along y.
	Extent() (ex, ey int)

	// InputRegion returns the region needed to compute roi.
	InputRegion(roi geom.Box) geom.Box

	// OutputRegion returns the region computable from roi. It is the
	// inverse of InputRegion.
	OutputRegion(roi geom.Box) geom.Box

	IsDecomposable() bool
	IsIncremental() bool

	// Decompose returns the lines whose successive dilations equal the
	// dilation by the SE.
	Decompose() ([]PeriodicLine, error)

	// Offsets returns the pixel set of the SE, sorted row-major.
	Offsets() []geom.Point
}

// Validate checks the parameters of s. Constructors only return valid
// shapes, but the exported fields of PeriodicLine and Rect allow literals
// that describe no shape.
func Validate(s StructuringElement) error {
	if s == nil {
		return fmt.Errorf("%w: nil structuring element", ErrInvalidShape)
	}
	if v, ok := s.(interface{ validate() error }); ok {
		return v.validate()
	}
	return nil
}

func inflate(roi geom.Box, s StructuringElement) geom.Box {
	ex, ey := s.Extent()
	return roi.Inflate(ex, ey)
}

func shrink(roi geom.Box, s StructuringElement) geom.Box {
	ex, ey := s.Extent()
	return roi.Shrink(ex, ey)
}

// extentOf returns the per-axis extent of a set of offsets.
func extentOf(offsets []geom.Point) (ex, ey int) {
	for _, p := range offsets {
		ex = max(ex, abs(p.X))
		ey = max(ey, abs(p.Y))
	}
	return ex, ey
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
