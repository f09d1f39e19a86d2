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

// Package tile runs flat dilations over an image tile by tile.
//
// A Chain holds one filter per line of a decomposed structuring element, or
// a single offset-accumulation filter for shapes without decomposition.
// For every output tile the chain walks its filters backward to find the
// input region each stage needs, loads that region (padding whatever lies
// outside the image), runs the filters in order inside preallocated scratch
// and writes the result. Tiles are independent: a chain can dispatch them
// on a go-highway worker pool, each worker owning a private clone of the
// chain and its scratch.
package tile

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/kernel"
	"github.com/ajroetker/go-morpho/morpho/value"
)

var (
	// ErrPrecondition reports invalid arguments: non-positive tile sizes,
	// empty domains, unbound chains, mismatched images.
	ErrPrecondition = errors.New("precondition violation")

	// ErrInsufficientHalo reports a tile whose input region exceeds the
	// chain scratch. It is never returned: the tile is recomputed on an
	// extended buffer and the condition is logged once.
	ErrInsufficientHalo = errors.New("insufficient halo")
)

// Tile is a block of samples positioned in image coordinates: row j of the
// block holds the pixels (ROI.X .. ROI.X+ROI.Width-1, ROI.Y+j).
type Tile[T value.Sample] struct {
	ROI geom.Box
	kernel.Block[T]
}

// Sub returns the view of t covering roi, which must lie inside t.ROI.
func (t Tile[T]) Sub(roi geom.Box) Tile[T] {
	if !t.ROI.Includes(roi) {
		panic(fmt.Sprintf("tile: sub-region %v outside %v", roi, t.ROI))
	}
	return Tile[T]{
		ROI:   roi,
		Block: t.Block.Sub(roi.X-t.ROI.X, roi.Y-t.ROI.Y, roi.Width, roi.Height),
	}
}

// arena is the scratch memory of one chain: two tile buffers that filters
// ping-pong between, the prefix/suffix scratch of the line kernel and one
// line buffer for gathered traces.
type arena[T value.Sample] struct {
	w, h int
	buf  [2][]T
	g, s []T
	line []T
}

func newArena[T value.Sample](w, h int) *arena[T] {
	n := w * h
	return &arena[T]{
		w:    w,
		h:    h,
		buf:  [2][]T{make([]T, n), make([]T, n)},
		g:    make([]T, n),
		s:    make([]T, n),
		line: make([]T, max(w, h)),
	}
}

func (a *arena[T]) fits(roi geom.Box) bool {
	return roi.Width <= a.w && roi.Height <= a.h
}

// view returns buffer i laid out as a tile covering roi.
func (a *arena[T]) view(i int, roi geom.Box) Tile[T] {
	return Tile[T]{ROI: roi, Block: kernel.NewBlock(a.buf[i], roi.Width, roi.Height, a.w)}
}

// scratch returns the prefix and suffix blocks for a w×h scan.
func (a *arena[T]) scratch(w, h int) (g, s kernel.Block[T]) {
	return kernel.Contiguous(a.g, w, h), kernel.Contiguous(a.s, w, h)
}
