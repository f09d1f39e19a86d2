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

package kernel

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/matmul"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// transposeTile returns the edge of the square micro-tiles the transposes
// walk. It follows the vector width so that one micro-tile row is one
// vector, with a floor that keeps narrow targets cache friendly.
func transposeTile[T value.Sample]() int {
	return max(hwy.MaxLanes[T](), 8)
}

// Transpose writes in transposed into out: out(y, x) = in(x, y).
// out must be in.Height wide and in.Width tall, and must not overlap in.
func Transpose[T value.Sample](in, out Block[T]) {
	if out.Width != in.Height || out.Height != in.Width {
		panic(fmt.Sprintf("kernel: Transpose: %dx%d into %dx%d", in.Width, in.Height, out.Width, out.Height))
	}
	if in.Width == 0 || in.Height == 0 {
		return
	}
	if in.Stride == in.Width && out.Stride == out.Width && transposeFloats(in, out) {
		return
	}
	bs := transposeTile[T]()
	for y0 := 0; y0 < in.Height; y0 += bs {
		y1 := min(y0+bs, in.Height)
		for x0 := 0; x0 < in.Width; x0 += bs {
			x1 := min(x0+bs, in.Width)
			for y := y0; y < y1; y++ {
				src := in.Row(y)
				for x := x0; x < x1; x++ {
					out.Data[x*out.Stride+y] = src[x]
				}
			}
		}
	}
}

// transposeFloats hands contiguous float blocks to the SIMD transpose of
// the matmul package. It reports false for other sample types.
func transposeFloats[T value.Sample](in, out Block[T]) bool {
	n := in.Width * in.Height
	switch src := any(in.Data[:n]).(type) {
	case []float32:
		matmul.Transpose2D(src, in.Height, in.Width, any(out.Data[:n]).([]float32))
		return true
	case []float64:
		matmul.Transpose2D(src, in.Height, in.Width, any(out.Data[:n]).([]float64))
		return true
	}
	return false
}

// TransposeInPlace transposes the square block b.
func TransposeInPlace[T value.Sample](b Block[T]) {
	if b.Width != b.Height {
		panic(fmt.Sprintf("kernel: TransposeInPlace needs a square block, got %dx%d", b.Width, b.Height))
	}
	n := b.Width
	bs := transposeTile[T]()
	for i0 := 0; i0 < n; i0 += bs {
		i1 := min(i0+bs, n)
		// Diagonal micro-tile.
		for i := i0; i < i1; i++ {
			for j := i + 1; j < i1; j++ {
				swap(b, i, j)
			}
		}
		// Off-diagonal micro-tiles, swapped pairwise.
		for j0 := i1; j0 < n; j0 += bs {
			j1 := min(j0+bs, n)
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					swap(b, i, j)
				}
			}
		}
	}
}

func swap[T value.Sample](b Block[T], i, j int) {
	p, q := i*b.Stride+j, j*b.Stride+i
	b.Data[p], b.Data[q] = b.Data[q], b.Data[p]
}
