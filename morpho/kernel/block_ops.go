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

	"github.com/ajroetker/go-morpho/morpho/value"
)

// BlockPrefix computes the running combine down the columns of in:
// out row y = op(in rows 0..y). in and out may be the same view.
// Successive rows depend on each other; the samples of a row are combined
// with vector lanes.
func BlockPrefix[T value.Sample](in, out Block[T], op value.Op[T]) {
	checkSameShape("BlockPrefix", in, out)
	if in.Height == 0 || in.Width == 0 {
		return
	}
	copy(out.Row(0), in.Row(0))
	for y := 1; y < in.Height; y++ {
		combineRow(out.Row(y), out.Row(y-1), in.Row(y), op)
	}
}

// BlockSuffix computes the running combine up the columns of in:
// out row y = op(in rows y..Height-1). in and out may be the same view.
func BlockSuffix[T value.Sample](in, out Block[T], op value.Op[T]) {
	checkSameShape("BlockSuffix", in, out)
	if in.Height == 0 || in.Width == 0 {
		return
	}
	last := in.Height - 1
	copy(out.Row(last), in.Row(last))
	for y := last - 1; y >= 0; y-- {
		combineRow(out.Row(y), in.Row(y), out.Row(y+1), op)
	}
}

// BlockTransform stores the pointwise combine of a and b into out.
// out may alias a or b.
func BlockTransform[T value.Sample](a, b, out Block[T], op value.Op[T]) {
	checkSameShape("BlockTransform", a, b)
	checkSameShape("BlockTransform", a, out)
	if a.Width == 0 {
		return
	}
	for y := range a.Height {
		combineRow(out.Row(y), a.Row(y), b.Row(y), op)
	}
}

// BlockRunningExtremum applies RunningExtremum down every column of f in
// place: row x of f becomes op over rows [x+offset, x+offset+m), clipped.
// g and h are scratch blocks at least as large as f.
func BlockRunningExtremum[T value.Sample](f, g, h Block[T], m, offset int, op value.Op[T]) {
	n := f.Height
	if n == 0 || f.Width == 0 {
		return
	}
	if m <= 0 {
		panic(fmt.Sprintf("kernel: BlockRunningExtremum needs m > 0, got %d", m))
	}
	if m == 1 && offset == 0 {
		return
	}
	g = g.Sub(0, 0, f.Width, n)
	h = h.Sub(0, 0, f.Width, n)

	for b := 0; b < n; b += m {
		e := min(b+m, n)
		BlockPrefix(f.Rows(b, e), g.Rows(b, e), op)
		BlockSuffix(f.Rows(b, e), h.Rows(b, e), op)
	}

	for x := range n {
		dst := f.Row(x)
		s := Classify(x+offset, m, n)
		switch s.Kind {
		case SpanEmpty:
			FillRow(dst, op.Zero())
		case SpanPrefix:
			copy(dst, g.Row(s.G))
		case SpanSuffix:
			copy(dst, h.Row(s.H))
		case SpanPair:
			combineRow(dst, h.Row(s.H), g.Row(s.G), op)
		}
	}
}
