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

// Package kernel implements the numeric core of flat morphology: the van
// Herk/Gil-Werman running extremum on a single line and its columnar,
// lane-parallel form over strided 2D blocks, plus the block transpose that
// lets every line orientation reuse the vertical scan.
//
// All functions operate on caller-owned memory and never allocate. Shape
// mismatches are programming errors and panic.
package kernel

import (
	"fmt"

	"github.com/ajroetker/go-morpho/morpho/value"
)

// Block is a row-major 2D view with an explicit stride. Row y occupies
// Data[y*Stride : y*Stride+Width].
type Block[T value.Sample] struct {
	Data   []T
	Width  int
	Height int
	Stride int
}

// NewBlock returns a view over data, checking that every row fits.
func NewBlock[T value.Sample](data []T, width, height, stride int) Block[T] {
	if width < 0 || height < 0 || stride < width {
		panic(fmt.Sprintf("kernel: invalid block shape %dx%d stride %d", width, height, stride))
	}
	if height > 0 && width > 0 && len(data) < (height-1)*stride+width {
		panic(fmt.Sprintf("kernel: block %dx%d stride %d needs %d elements, have %d",
			width, height, stride, (height-1)*stride+width, len(data)))
	}
	return Block[T]{Data: data, Width: width, Height: height, Stride: stride}
}

// Contiguous returns a width×height view over the start of data with
// stride equal to width.
func Contiguous[T value.Sample](data []T, width, height int) Block[T] {
	return NewBlock(data, width, height, width)
}

// Row returns row y, limited to the block width.
func (b Block[T]) Row(y int) []T {
	if b.Width == 0 {
		return nil
	}
	off := y * b.Stride
	return b.Data[off : off+b.Width : off+b.Width]
}

// At returns the sample at column x of row y.
func (b Block[T]) At(x, y int) T {
	return b.Data[y*b.Stride+x]
}

// Set stores v at column x of row y.
func (b Block[T]) Set(x, y int, v T) {
	b.Data[y*b.Stride+x] = v
}

// Rows returns the view of rows [y0, y1).
func (b Block[T]) Rows(y0, y1 int) Block[T] {
	return b.Sub(0, y0, b.Width, y1-y0)
}

// Sub returns the w×h view whose top-left sample is (x, y).
func (b Block[T]) Sub(x, y, w, h int) Block[T] {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > b.Width || y+h > b.Height {
		panic(fmt.Sprintf("kernel: sub-block (%d,%d %dx%d) outside %dx%d", x, y, w, h, b.Width, b.Height))
	}
	if w == 0 || h == 0 {
		return Block[T]{Width: w, Height: h, Stride: b.Stride}
	}
	off := y*b.Stride + x
	return Block[T]{Data: b.Data[off:], Width: w, Height: h, Stride: b.Stride}
}

// Strided returns the view made of rows phase, phase+period, phase+2·period,
// ... of b. A running extremum over a strided view is the running extremum
// of a line with step period.
func (b Block[T]) Strided(phase, period int) Block[T] {
	if period <= 0 || phase < 0 || phase >= period {
		panic(fmt.Sprintf("kernel: invalid strided view phase %d period %d", phase, period))
	}
	if phase >= b.Height {
		return Block[T]{Width: b.Width, Stride: b.Stride * period}
	}
	h := (b.Height - phase + period - 1) / period
	return Block[T]{Data: b.Data[phase*b.Stride:], Width: b.Width, Height: h, Stride: b.Stride * period}
}

// Fill sets every sample of b to v.
func (b Block[T]) Fill(v T) {
	for y := range b.Height {
		FillRow(b.Row(y), v)
	}
}

// CopyFrom copies src into b. Both blocks must have the same shape.
func (b Block[T]) CopyFrom(src Block[T]) {
	checkSameShape("CopyFrom", b, src)
	for y := range b.Height {
		copy(b.Row(y), src.Row(y))
	}
}

func checkSameShape[T value.Sample](name string, a, b Block[T]) {
	if a.Width != b.Width || a.Height != b.Height {
		panic(fmt.Sprintf("kernel: %s: shape mismatch %dx%d vs %dx%d", name, a.Width, a.Height, b.Width, b.Height))
	}
}
