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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-morpho/internal/logging"
	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/value"
)

func randomImage(w, h int, seed int64) *image.Image[uint8] {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewImage[uint8](w, h)
	for y := range h {
		for x := range w {
			img.Set(x, y, uint8(rng.Intn(256)))
		}
	}
	return img
}

// paddedAt returns the sample of the infinitely padded image at (x, y).
func paddedAt[T value.Sample](img *image.Image[T], pad Padding[T], op value.Op[T], x, y int) T {
	w, h := img.Width(), img.Height()
	if x >= 0 && x < w && y >= 0 && y < h {
		return img.At(x, y)
	}
	if v, ok := pad.fill(op); ok {
		return v
	}
	index := pad.indexFunc()
	return img.At(index(x, w), index(y, h))
}

// naiveDilate is the reference: out(p) = op over padded(p + o) for every
// offset o.
func naiveDilate[T value.Sample](img *image.Image[T], offsets []geom.Point, op value.Op[T], pad Padding[T]) *image.Image[T] {
	out := image.NewImage[T](img.Width(), img.Height())
	for y := range img.Height() {
		for x := range img.Width() {
			acc := op.Zero()
			for _, o := range offsets {
				acc = op.Combine(acc, paddedAt(img, pad, op, x+o.X, y+o.Y))
			}
			out.Set(x, y, acc)
		}
	}
	return out
}

func runChain[T value.Sample](t *testing.T, c *Chain[T], img *image.Image[T], pad Padding[T], exec workerpool.Executor) *image.Image[T] {
	t.Helper()
	out := image.NewImage[T](img.Width(), img.Height())
	if err := c.Bind(ImageLoader(img, pad, c.op), ImageWriter(out)); err != nil {
		t.Fatal(err)
	}
	if err := c.Execute(geom.FromRect(img.Bounds()), exec); err != nil {
		t.Fatal(err)
	}
	return out
}

func diffImages[T value.Sample](a, b *image.Image[T]) string {
	for y := range a.Height() {
		for x := range a.Width() {
			if a.At(x, y) != b.At(x, y) {
				return fmt.Sprintf("first difference at (%d,%d): %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
	return ""
}

func testShapes(t *testing.T) []se.StructuringElement {
	t.Helper()
	discApprox, err := se.NewDisc(5, se.EightLines)
	if err != nil {
		t.Fatal(err)
	}
	discExact, err := se.NewDisc(3, se.Exact)
	if err != nil {
		t.Fatal(err)
	}
	mask, err := se.ParseMask(
		"#....",
		".#.#.",
		"..#..",
	)
	if err != nil {
		t.Fatal(err)
	}
	return []se.StructuringElement{
		se.Horizontal(3),
		se.Vertical(2),
		se.PeriodicLine{Dir: geom.Pt(0, 2), K: 2},
		se.PeriodicLine{Dir: geom.Pt(3, 0), K: 1},
		se.PeriodicLine{Dir: geom.Pt(1, 1), K: 2},
		se.PeriodicLine{Dir: geom.Pt(-2, 1), K: 1},
		se.Square(2),
		se.Rect{Width: 7, Height: 3},
		discApprox,
		discExact,
		mask,
	}
}

func TestChainMatchesNaive(t *testing.T) {
	img := randomImage(37, 29, 1)
	paddings := []Padding[uint8]{
		{Mode: PadIdentity},
		{Mode: PadConstant, Value: 77},
		{Mode: PadMirror},
		{Mode: PadClamp},
		{Mode: PadWrap},
	}
	tiles := []struct{ w, h int }{{7, 5}, {16, 16}, {64, 64}}
	ops := []value.Op[uint8]{value.Sup[uint8](), value.Inf[uint8]()}

	for _, s := range testShapes(t) {
		for _, op := range ops {
			for _, pad := range paddings {
				want := naiveDilate(img, s.Offsets(), op, pad)
				for _, ts := range tiles {
					name := fmt.Sprintf("%v/%v/%v/%dx%d", s, op.Kind(), pad.Mode, ts.w, ts.h)
					c, err := NewChain(s, op, ts.w, ts.h)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if d := diffImages(want, runChain(t, c, img, pad, nil)); d != "" {
						t.Errorf("%s: decomposed chain: %s", name, d)
					}
					fc, err := NewFallbackChain(s, op, ts.w, ts.h)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if d := diffImages(want, runChain(t, fc, img, pad, nil)); d != "" {
						t.Errorf("%s: fallback chain: %s", name, d)
					}
				}
			}
		}
	}
}

func TestChainFilterKinds(t *testing.T) {
	disc, _ := se.NewDisc(9, se.EightLines)
	c, err := NewChain(disc, value.Sup[float32](), 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	var v, h, o, f int
	for _, flt := range c.Filters() {
		switch flt.(type) {
		case *VerticalLine[float32]:
			v++
		case *HorizontalLine[float32]:
			h++
		case *ObliqueLine[float32]:
			o++
		case *Fallback[float32]:
			f++
		}
	}
	lines, _ := disc.Decompose()
	if v != 1 || h != 1 || o != 6 || f != 0 || len(lines) != 8 {
		t.Errorf("filters: %d vertical, %d horizontal, %d oblique, %d fallback for %d lines", v, h, o, f, len(lines))
	}

	exact, _ := se.NewDisc(9, se.Exact)
	c, err = NewChain(exact, value.Sup[float32](), 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Filters()) != 1 {
		t.Fatalf("exact disc: %d filters, want 1", len(c.Filters()))
	}
	if _, ok := c.Filters()[0].(*Fallback[float32]); !ok {
		t.Errorf("exact disc filter is %T, want *Fallback", c.Filters()[0])
	}
}

func TestObliqueLineMatchesNaive(t *testing.T) {
	img := randomImage(37, 29, 11)
	pad := Padding[uint8]{Mode: PadMirror}
	dirs := []geom.Point{
		geom.Pt(1, 1), geom.Pt(-1, 1), geom.Pt(1, 2), geom.Pt(2, 1),
		geom.Pt(-2, 1), geom.Pt(-1, 2), geom.Pt(1, -1), geom.Pt(3, 2),
	}
	for _, op := range []value.Op[uint8]{value.Sup[uint8](), value.Inf[uint8]()} {
		for _, dir := range dirs {
			for _, k := range []int{1, 2, 5, 13} {
				l := se.PeriodicLine{Dir: dir, K: k}
				want := naiveDilate(img, l.Offsets(), op, pad)
				for _, ts := range [][2]int{{7, 5}, {32, 32}} {
					c, err := NewChain(l, op, ts[0], ts[1])
					if err != nil {
						t.Fatal(err)
					}
					if len(c.Filters()) != 1 {
						t.Fatalf("%v: %d filters, want 1", l, len(c.Filters()))
					}
					if _, ok := c.Filters()[0].(*ObliqueLine[uint8]); !ok {
						t.Fatalf("%v: filter is %T, want *ObliqueLine", l, c.Filters()[0])
					}
					got := runChain(t, c, img, pad, nil)
					if d := diffImages(want, got); d != "" {
						t.Errorf("%v %v tile %v: %s", op.Kind(), l, ts, d)
					}
				}
			}
		}
	}
}

func TestIdentityLineLeavesImageUnchanged(t *testing.T) {
	img := randomImage(19, 11, 2)
	zero, _ := se.NewDisc(0, se.Exact)
	for _, s := range []se.StructuringElement{se.Horizontal(0), se.Vertical(0), se.Square(0), zero} {
		c, err := NewChain(s, value.Sup[uint8](), 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(c.Filters()); n != 0 {
			t.Errorf("%v: %d filters, want 0", s, n)
		}
		if d := diffImages(img, runChain(t, c, img, Padding[uint8]{Mode: PadMirror}, nil)); d != "" {
			t.Errorf("%v: %s", s, d)
		}
	}
}

func TestParallelIsDeterministic(t *testing.T) {
	img := randomImage(150, 97, 3)
	disc, _ := se.NewDisc(7, se.EightLines)
	op := value.Sup[uint8]()
	pad := Padding[uint8]{Mode: PadClamp}

	c, err := NewChain(disc, op, 16, 24)
	if err != nil {
		t.Fatal(err)
	}
	want := runChain(t, c, img, pad, nil)

	for _, n := range []int{1, 2, 8} {
		pool := workerpool.New(n)
		got := runChain(t, c, img, pad, pool)
		pool.Close()
		if d := diffImages(want, got); d != "" {
			t.Errorf("%d workers: %s", n, d)
		}
		if c.State() != StateDone {
			t.Errorf("%d workers: state = %v, want done", n, c.State())
		}
	}
}

func TestScenarioDiscRadiusOne(t *testing.T) {
	img := image.NewImage[uint8](5, 5)
	img.Fill(1)
	approx, _ := se.NewDisc(1, se.EightLines)
	exact, _ := se.NewDisc(1, se.Exact)
	op := value.Sup[uint8]()

	for _, pad := range []Padding[uint8]{{Mode: PadIdentity}, {Mode: PadConstant, Value: 5}} {
		c, err := NewChain(approx, op, 4, 4)
		if err != nil {
			t.Fatal(err)
		}
		fc, err := NewFallbackChain(exact, op, 4, 4)
		if err != nil {
			t.Fatal(err)
		}
		got := runChain(t, c, img, pad, nil)
		want := runChain(t, fc, img, pad, nil)
		if d := diffImages(want, got); d != "" {
			t.Errorf("%v: %s", pad.Mode, d)
		}

		border := uint8(1)
		if pad.Mode == PadConstant {
			border = 5
		}
		for y := range 5 {
			for x := range 5 {
				want := uint8(1)
				if x == 0 || y == 0 || x == 4 || y == 4 {
					want = border
				}
				if v := got.At(x, y); v != want {
					t.Errorf("%v: (%d,%d) = %d, want %d", pad.Mode, x, y, v, want)
				}
			}
		}
	}
}

func TestFilterRegionInvariant(t *testing.T) {
	rois := []geom.Box{geom.NewBox(0, 0, 1, 1), geom.NewBox(-3, 5, 17, 9)}
	for _, s := range testShapes(t) {
		c, err := NewChain(s, value.Sup[int16](), 16, 16)
		if err != nil {
			t.Fatal(err)
		}
		for _, f := range c.Filters() {
			for _, roi := range rois {
				if got := f.OutputRegion(f.InputRegion(roi)); !got.Includes(roi) {
					t.Errorf("%v / %v: OutputRegion(InputRegion(%v)) = %v", s, f, roi, got)
				}
			}
		}
		roi := rois[1]
		if got, want := c.InputRegion(roi), s.InputRegion(roi); got != want {
			t.Errorf("%v: chain InputRegion = %v, SE InputRegion = %v", s, got, want)
		}
	}
}

func TestInsufficientHaloIsRecovered(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer logging.SetLogger(nil)

	img := randomImage(40, 30, 4)
	s := se.Square(3)
	op := value.Sup[uint8]()
	pad := Padding[uint8]{Mode: PadMirror}
	want := naiveDilate(img, s.Offsets(), op, pad)

	c, err := NewChain(s, op, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	out := image.NewImage[uint8](40, 30)
	if err := c.Bind(ImageLoader(img, pad, op), ImageWriter(out)); err != nil {
		t.Fatal(err)
	}
	for _, roi := range []geom.Box{geom.NewBox(0, 0, 25, 30), geom.NewBox(25, 0, 15, 30)} {
		if err := c.ExecuteTile(roi); err != nil {
			t.Fatal(err)
		}
	}
	if d := diffImages(want, out); d != "" {
		t.Error(d)
	}
	if n := strings.Count(buf.String(), "extended buffer"); n != 1 {
		t.Errorf("halo warning logged %d times, want 1", n)
	}
}

func TestChainPreconditions(t *testing.T) {
	op := value.Sup[uint8]()
	if _, err := NewChain[uint8](nil, op, 8, 8); !errors.Is(err, ErrPrecondition) {
		t.Errorf("nil SE: err = %v", err)
	}
	for _, sz := range [][2]int{{0, 8}, {8, -1}} {
		if _, err := NewChain(se.Square(1), op, sz[0], sz[1]); !errors.Is(err, ErrPrecondition) {
			t.Errorf("tile %v: err = %v", sz, err)
		}
	}

	c, err := NewChain(se.Square(1), op, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != StateBuilt {
		t.Errorf("state = %v, want built", c.State())
	}
	domain := geom.NewBox(0, 0, 10, 10)
	if err := c.Execute(domain, nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("execute before bind: err = %v", err)
	}
	if err := c.Bind(nil, nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("nil callbacks: err = %v", err)
	}

	img := randomImage(10, 10, 5)
	pad := Padding[uint8]{Mode: PadClamp}
	out := image.NewImage[uint8](10, 10)
	if err := c.Bind(ImageLoader(img, pad, op), ImageWriter(out)); err != nil {
		t.Fatal(err)
	}
	if err := c.Execute(geom.Box{}, nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("empty domain: err = %v", err)
	}
	// The chain is still usable after a rejected call.
	if err := c.Execute(domain, nil); err != nil {
		t.Fatal(err)
	}
	if d := diffImages(naiveDilate(img, se.Square(1).Offsets(), op, pad), out); d != "" {
		t.Error(d)
	}

	mask, _ := se.ParseMask("#")
	if _, err := NewChain(mask, op, 8, 8); err != nil {
		t.Errorf("mask chain: %v", err)
	}

	invalid := []se.StructuringElement{
		se.PeriodicLine{Dir: geom.Pt(1, 1), K: -1},
		se.PeriodicLine{Dir: geom.Pt(0, 0), K: 2},
		se.Rect{Width: 4, Height: 3},
		se.Rect{Width: 0, Height: 1},
		(*se.Disc)(nil),
	}
	for _, s := range invalid {
		if _, err := NewChain(s, op, 8, 8); !errors.Is(err, se.ErrInvalidShape) {
			t.Errorf("NewChain(%#v): err = %v, want ErrInvalidShape", s, err)
		}
		if _, err := NewFallbackChain(s, op, 8, 8); !errors.Is(err, se.ErrInvalidShape) {
			t.Errorf("NewFallbackChain(%#v): err = %v, want ErrInvalidShape", s, err)
		}
	}
}

func BenchmarkChain(b *testing.B) {
	img := randomImage(512, 512, 6)
	out := image.NewImage[uint8](512, 512)
	op := value.Sup[uint8]()
	for _, r := range []float64{3, 15, 40} {
		disc, _ := se.NewDisc(r, se.EightLines)
		c, err := NewChain(disc, op, 128, 128)
		if err != nil {
			b.Fatal(err)
		}
		if err := c.Bind(ImageLoader(img, Padding[uint8]{}, op), ImageWriter(out)); err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("r=%v", r), func(b *testing.B) {
			for b.Loop() {
				if err := c.Execute(geom.FromRect(img.Bounds()), nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
