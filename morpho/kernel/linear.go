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

// SpanKind tells how the window of one output sample is assembled from the
// block prefix (g) and block suffix (h) scans.
type SpanKind uint8

const (
	// SpanEmpty: the window misses [0, n); the result is the identity.
	SpanEmpty SpanKind = iota
	// SpanPrefix: the window starts before 0; the result is g[G].
	SpanPrefix
	// SpanSuffix: the window ends past n-1 inside the last block; the
	// result is h[H].
	SpanSuffix
	// SpanPair: the window straddles two adjacent blocks; the result is
	// op(h[H], g[G]).
	SpanPair
)

// Span locates the window [y, y+m) of a line of length n in the scans.
type Span struct {
	Kind SpanKind
	H, G int
}

// Classify resolves the window [y, y+m) over a line of length n split in
// consecutive blocks of length m.
func Classify(y, m, n int) Span {
	switch {
	case y+m <= 0 || y >= n:
		return Span{Kind: SpanEmpty}
	case y < 0:
		return Span{Kind: SpanPrefix, G: min(y+m-1, n-1)}
	case y+m <= n:
		return Span{Kind: SpanPair, H: y, G: y + m - 1}
	case y/m == (n-1)/m:
		return Span{Kind: SpanSuffix, H: y}
	default:
		return Span{Kind: SpanPair, H: y, G: n - 1}
	}
}

// RunningExtremum replaces f[x] with op over f[x+offset : x+offset+m],
// clipped to the line. Windows that miss the line entirely yield op.Zero().
//
// g and h are scratch of at least len(f) elements. The cost is O(len(f))
// whatever m is: a forward scan computes prefix combines within each block
// of m samples, a backward scan computes suffix combines, and every window
// is then the combine of at most one suffix and one prefix.
func RunningExtremum[T value.Sample](f, g, h []T, m, offset int, op value.Op[T]) {
	n := len(f)
	if n == 0 || m <= 0 {
		panic(fmt.Sprintf("kernel: RunningExtremum needs n > 0 and m > 0, got n=%d m=%d", n, m))
	}
	if len(g) < n || len(h) < n {
		panic(fmt.Sprintf("kernel: RunningExtremum scratch too small: %d, %d < %d", len(g), len(h), n))
	}
	if m == 1 && offset == 0 {
		return
	}
	g, h = g[:n], h[:n]

	for b := 0; b < n; b += m {
		e := min(b+m, n)
		g[b] = f[b]
		for i := b + 1; i < e; i++ {
			g[i] = op.Combine(g[i-1], f[i])
		}
		h[e-1] = f[e-1]
		for i := e - 2; i >= b; i-- {
			h[i] = op.Combine(f[i], h[i+1])
		}
	}

	for x := range n {
		s := Classify(x+offset, m, n)
		switch s.Kind {
		case SpanEmpty:
			f[x] = op.Zero()
		case SpanPrefix:
			f[x] = g[s.G]
		case SpanSuffix:
			f[x] = h[s.H]
		case SpanPair:
			f[x] = op.Combine(h[s.H], g[s.G])
		}
	}
}
