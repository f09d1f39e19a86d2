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
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-morpho/morpho/value"
)

// slidingNaive is the O(n·m) reference: out[x] = op over f[x+offset : x+offset+m],
// clipped to the line, op.Zero() when the clipped window is empty.
func slidingNaive[T value.Sample](f []T, m, offset int, op value.Op[T]) []T {
	n := len(f)
	out := make([]T, n)
	for x := range n {
		acc := op.Zero()
		for y := max(x+offset, 0); y < min(x+offset+m, n); y++ {
			acc = op.Combine(acc, f[y])
		}
		out[x] = acc
	}
	return out
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		y, m, n int
		want    Span
	}{
		{y: -5, m: 3, n: 10, want: Span{Kind: SpanEmpty}},
		{y: -3, m: 3, n: 10, want: Span{Kind: SpanEmpty}},
		{y: -2, m: 3, n: 10, want: Span{Kind: SpanPrefix, G: 0}},
		{y: -1, m: 3, n: 10, want: Span{Kind: SpanPrefix, G: 1}},
		{y: -1, m: 8, n: 4, want: Span{Kind: SpanPrefix, G: 3}},
		{y: 0, m: 3, n: 10, want: Span{Kind: SpanPair, H: 0, G: 2}},
		{y: 4, m: 3, n: 10, want: Span{Kind: SpanPair, H: 4, G: 6}},
		{y: 7, m: 3, n: 10, want: Span{Kind: SpanPair, H: 7, G: 9}},
		{y: 8, m: 3, n: 10, want: Span{Kind: SpanPair, H: 8, G: 9}},
		{y: 9, m: 3, n: 10, want: Span{Kind: SpanSuffix, H: 9}},
		{y: 10, m: 3, n: 10, want: Span{Kind: SpanEmpty}},
	}
	for _, tt := range tests {
		if got := Classify(tt.y, tt.m, tt.n); got != tt.want {
			t.Errorf("Classify(%d, %d, %d) = %+v, want %+v", tt.y, tt.m, tt.n, got, tt.want)
		}
	}
}

func TestRunningExtremumMatchesNaive(t *testing.T) {
	rng := newRand()
	ops := []value.Op[float64]{value.Sup[float64](), value.Inf[float64]()}
	for n := 1; n <= 50; n++ {
		f := make([]float64, n)
		g := make([]float64, n)
		h := make([]float64, n)
		src := make([]float64, n)
		for i := range src {
			src[i] = math.Round(rng.Float64()*200 - 100)
		}
		for m := 1; m <= n; m++ {
			for offset := -m; offset <= m; offset++ {
				for _, op := range ops {
					copy(f, src)
					RunningExtremum(f, g, h, m, offset, op)
					want := slidingNaive(src, m, offset, op)
					for x := range n {
						if f[x] != want[x] {
							t.Fatalf("%v n=%d m=%d offset=%d: f[%d] = %v, want %v", op.Kind(), n, m, offset, x, f[x], want[x])
						}
					}
				}
			}
		}
	}
}

func TestRunningExtremumIdentityWindow(t *testing.T) {
	f := []uint8{3, 1, 4, 1, 5}
	want := append([]uint8(nil), f...)
	g := make([]uint8, len(f))
	h := make([]uint8, len(f))
	RunningExtremum(f, g, h, 1, 0, value.Sup[uint8]())
	for i := range f {
		if f[i] != want[i] {
			t.Fatalf("m=1: f = %v, want %v", f, want)
		}
	}
}

func TestRunningExtremumEmptyWindows(t *testing.T) {
	// offset pushes every window past the end: the identity is emitted.
	f := []int16{10, 20, 30}
	g := make([]int16, 3)
	h := make([]int16, 3)
	op := value.Sup[int16]()
	RunningExtremum(f, g, h, 2, 3, op)
	for i, v := range f {
		if v != op.Zero() {
			t.Errorf("f[%d] = %d, want identity %d", i, v, op.Zero())
		}
	}
}

func TestRunningExtremumPanics(t *testing.T) {
	tests := []struct {
		name string
		f    []int32
		s    int
		m    int
	}{
		{"empty", nil, 0, 1},
		{"zero window", make([]int32, 4), 4, 0},
		{"short scratch", make([]int32, 4), 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			RunningExtremum(tt.f, make([]int32, tt.s), make([]int32, tt.s), tt.m, 0, value.Sup[int32]())
		})
	}
}

func BenchmarkRunningExtremum(b *testing.B) {
	const n = 4096
	rng := newRand()
	f := make([]float32, n)
	for i := range f {
		f[i] = rng.Float32()
	}
	g := make([]float32, n)
	h := make([]float32, n)
	op := value.Sup[float32]()
	for _, k := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			for b.Loop() {
				RunningExtremum(f, g, h, 2*k+1, -k, op)
			}
		})
	}
}
