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

package tile

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/kernel"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// PaddingMode selects how pixels outside the source image are filled.
type PaddingMode uint8

const (
	// PadIdentity fills with the identity of the combine, so that the
	// border never wins: the lowest value for dilation, the highest for
	// erosion.
	PadIdentity PaddingMode = iota
	// PadConstant fills with Padding.Value.
	PadConstant
	// PadMirror reflects the image about its edges, repeating the edge
	// pixel (image.Mirror).
	PadMirror
	// PadClamp replicates the nearest edge pixel (image.Clamp).
	PadClamp
	// PadWrap tiles the image periodically (image.Wrap).
	PadWrap
)

var paddingNames = [...]string{
	PadIdentity: "identity",
	PadConstant: "constant",
	PadMirror:   "mirror",
	PadClamp:    "clamp",
	PadWrap:     "wrap",
}

func (m PaddingMode) String() string {
	if int(m) < len(paddingNames) {
		return paddingNames[m]
	}
	return fmt.Sprintf("PaddingMode(%d)", uint8(m))
}

// ParsePaddingMode returns the mode named s, as printed by String.
func ParsePaddingMode(s string) (PaddingMode, error) {
	for i, name := range paddingNames {
		if name == s {
			return PaddingMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown padding mode %q", ErrPrecondition, s)
}

// Padding is a padding policy. Value is only used by PadConstant.
type Padding[T value.Sample] struct {
	Mode  PaddingMode
	Value T
}

// Validate checks that the mode is known.
func (p Padding[T]) Validate() error {
	if int(p.Mode) >= len(paddingNames) {
		return fmt.Errorf("%w: unknown padding mode %v", ErrPrecondition, p.Mode)
	}
	return nil
}

// fill returns the constant used by the filling modes.
func (p Padding[T]) fill(op value.Op[T]) (T, bool) {
	switch p.Mode {
	case PadIdentity:
		return op.Zero(), true
	case PadConstant:
		return p.Value, true
	}
	var zero T
	return zero, false
}

func (p Padding[T]) indexFunc() func(index, size int) int {
	switch p.Mode {
	case PadMirror:
		return image.Mirror
	case PadWrap:
		return image.Wrap
	default:
		return image.Clamp
	}
}

// ImageLoader returns a LoadFunc reading img, with pixels outside img
// filled according to pad. op provides the identity of PadIdentity.
func ImageLoader[T value.Sample](img *image.Image[T], pad Padding[T], op value.Op[T]) LoadFunc[T] {
	w, h := img.Width(), img.Height()
	fillValue, filling := pad.fill(op)
	index := pad.indexFunc()

	return func(dst Tile[T]) {
		r := dst.ROI
		// Columns of dst that lie inside the image.
		x0 := min(max(r.X, 0), r.X+r.Width)
		x1 := max(min(r.X+r.Width, w), x0)

		for j := range r.Height {
			row := dst.Row(j)
			y := r.Y + j
			if y < 0 || y >= h {
				if filling {
					kernel.FillRow(row, fillValue)
					continue
				}
				y = index(y, h)
			}
			src := img.RowSlice(y)

			if x1 > x0 {
				copy(row[x0-r.X:x1-r.X], src[x0:x1])
			}
			left, right := row[:x0-r.X], row[x1-r.X:]
			if filling {
				kernel.FillRow(left, fillValue)
				kernel.FillRow(right, fillValue)
				continue
			}
			for i := range left {
				left[i] = src[index(r.X+i, w)]
			}
			for i := range right {
				right[i] = src[index(x1+i, w)]
			}
		}
	}
}

// ImageWriter returns a WriteFunc pasting tiles into img. Pixels of a tile
// outside img are dropped.
func ImageWriter[T value.Sample](img *image.Image[T]) WriteFunc[T] {
	bounds := geom.FromRect(img.Bounds())
	return func(src Tile[T]) {
		r := src.ROI.Intersect(bounds)
		if r.Empty() {
			return
		}
		src = src.Sub(r)
		for j := range r.Height {
			dst := img.RowSlice(r.Y + j)
			copy(dst[r.X:r.X+r.Width], src.Row(j))
		}
	}
}
