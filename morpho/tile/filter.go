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

	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/kernel"
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// Filter is one stage of a Chain. The set of filters is closed: a stage is
// a *VerticalLine, a *HorizontalLine, an *ObliqueLine or a *Fallback.
type Filter[T value.Sample] interface {
	// InputRegion returns the region this stage reads to produce out.
	InputRegion(out geom.Box) geom.Box
	// OutputRegion returns the region this stage can produce from in.
	OutputRegion(in geom.Box) geom.Box
	String() string

	sealed()
}

// VerticalLine dilates columns in place with the running extremum kernel.
type VerticalLine[T value.Sample] struct {
	line se.PeriodicLine
}

func (f *VerticalLine[T]) InputRegion(out geom.Box) geom.Box { return f.line.InputRegion(out) }
func (f *VerticalLine[T]) OutputRegion(in geom.Box) geom.Box { return f.line.OutputRegion(in) }
func (f *VerticalLine[T]) String() string                    { return "vertical " + f.line.String() }
func (*VerticalLine[T]) sealed()                             {}

// Line returns the primitive the filter evaluates.
func (f *VerticalLine[T]) Line() se.PeriodicLine { return f.line }

func (f *VerticalLine[T]) apply(in Tile[T], out geom.Box, ar *arena[T], op value.Op[T]) Tile[T] {
	cols := in.Sub(geom.NewBox(out.X, in.ROI.Y, out.Width, in.ROI.Height))
	runColumns(cols.Block, f.line.K, f.line.Period(), ar, op)
	return in.Sub(out)
}

// HorizontalLine transposes its input so that rows become columns, runs
// the columnar kernel and transposes back. It owns the transpose buffer.
type HorizontalLine[T value.Sample] struct {
	line se.PeriodicLine
	buf  []T
}

func (f *HorizontalLine[T]) InputRegion(out geom.Box) geom.Box { return f.line.InputRegion(out) }
func (f *HorizontalLine[T]) OutputRegion(in geom.Box) geom.Box { return f.line.OutputRegion(in) }
func (f *HorizontalLine[T]) String() string                    { return "horizontal " + f.line.String() }
func (*HorizontalLine[T]) sealed()                             {}

// Line returns the primitive the filter evaluates.
func (f *HorizontalLine[T]) Line() se.PeriodicLine { return f.line }

func (f *HorizontalLine[T]) apply(in Tile[T], out geom.Box, ar *arena[T], op value.Op[T]) Tile[T] {
	rows := in.Sub(geom.NewBox(in.ROI.X, out.Y, in.ROI.Width, out.Height))
	k, p := f.line.K, f.line.Period()

	if rows.Width == rows.Height {
		kernel.TransposeInPlace(rows.Block)
		runColumns(rows.Block, k, p, ar, op)
		kernel.TransposeInPlace(rows.Block)
		return in.Sub(out)
	}

	n := rows.Width * rows.Height
	buf := f.buf
	if len(buf) < n {
		// Only reached on the extended-halo path.
		buf = make([]T, n)
	}
	t := kernel.Contiguous(buf, rows.Height, rows.Width)
	kernel.Transpose(rows.Block, t)
	runColumns(t, k, p, ar, op)

	dst := in.Sub(out)
	x0 := out.X - in.ROI.X
	kernel.Transpose(t.Rows(x0, x0+out.Width), dst.Block)
	return dst
}

// runColumns dilates every column of b by a window of 2k+1 samples spaced
// by period rows.
func runColumns[T value.Sample](b kernel.Block[T], k, period int, ar *arena[T], op value.Op[T]) {
	for phase := range period {
		col := b.Strided(phase, period)
		if col.Height == 0 {
			continue
		}
		g, s := ar.scratch(col.Width, col.Height)
		kernel.BlockRunningExtremum(col, g, s, 2*k+1, -k, op)
	}
}

// ObliqueLine dilates a line whose step has two non-zero coordinates. Each
// trace p, p+Dir, p+2·Dir, ... of the tile is gathered into the arena line
// buffer, scanned with the running extremum kernel and scattered back.
type ObliqueLine[T value.Sample] struct {
	line se.PeriodicLine
}

func (f *ObliqueLine[T]) InputRegion(out geom.Box) geom.Box { return f.line.InputRegion(out) }
func (f *ObliqueLine[T]) OutputRegion(in geom.Box) geom.Box { return f.line.OutputRegion(in) }
func (f *ObliqueLine[T]) String() string                    { return "oblique " + f.line.String() }
func (*ObliqueLine[T]) sealed()                             {}

// Line returns the primitive the filter evaluates.
func (f *ObliqueLine[T]) Line() se.PeriodicLine { return f.line }

func (f *ObliqueLine[T]) apply(in Tile[T], out geom.Box, ar *arena[T], op value.Op[T]) Tile[T] {
	b := in.Block
	d, k := f.line.Dir, f.line.K
	inside := func(x, y int) bool { return x >= 0 && x < b.Width && y >= 0 && y < b.Height }
	for y := range b.Height {
		for x := range b.Width {
			// Traces start at the pixels whose predecessor leaves the tile.
			if inside(x-d.X, y-d.Y) {
				continue
			}
			n := 0
			for cx, cy := x, y; inside(cx, cy); cx, cy = cx+d.X, cy+d.Y {
				ar.line[n] = b.At(cx, cy)
				n++
			}
			kernel.RunningExtremum(ar.line[:n], ar.g, ar.s, 2*k+1, -k, op)
			for i, cx, cy := 0, x, y; i < n; i, cx, cy = i+1, cx+d.X, cy+d.Y {
				b.Set(cx, cy, ar.line[i])
			}
		}
	}
	return in.Sub(out)
}

// Fallback combines shifted copies of its input, one per offset. Its cost
// is proportional to the number of offsets; it serves shapes without line
// decomposition.
type Fallback[T value.Sample] struct {
	offsets []geom.Point
	ex, ey  int
}

func newFallback[T value.Sample](offsets []geom.Point) *Fallback[T] {
	f := &Fallback[T]{offsets: offsets}
	for _, o := range offsets {
		f.ex = max(f.ex, o.X, -o.X)
		f.ey = max(f.ey, o.Y, -o.Y)
	}
	return f
}

func (f *Fallback[T]) InputRegion(out geom.Box) geom.Box { return out.Inflate(f.ex, f.ey) }
func (f *Fallback[T]) OutputRegion(in geom.Box) geom.Box { return in.Shrink(f.ex, f.ey) }
func (f *Fallback[T]) String() string                    { return fmt.Sprintf("fallback(%d offsets)", len(f.offsets)) }
func (*Fallback[T]) sealed()                             {}

// Offsets returns the offsets the filter accumulates over.
func (f *Fallback[T]) Offsets() []geom.Point { return f.offsets }

// apply writes op over in(p + o), o in the offsets, into dst for every p of
// dst.ROI. dst must not share memory with in.
func (f *Fallback[T]) apply(in, dst Tile[T], op value.Op[T]) Tile[T] {
	if len(f.offsets) == 0 {
		dst.Fill(op.Zero())
		return dst
	}
	dst.CopyFrom(in.Sub(dst.ROI.Translate(f.offsets[0])).Block)
	for _, o := range f.offsets[1:] {
		src := in.Sub(dst.ROI.Translate(o))
		kernel.BlockTransform(dst.Block, src.Block, dst.Block, op)
	}
	return dst
}

// newFilters turns s into chain stages. Identity lines are dropped; a
// pixel set reduced to the origin yields no stage at all.
func newFilters[T value.Sample](s se.StructuringElement, decompose bool) ([]Filter[T], error) {
	if err := se.Validate(s); err != nil {
		return nil, err
	}
	if !decompose || !s.IsDecomposable() {
		offsets := s.Offsets()
		if len(offsets) == 1 && offsets[0].IsZero() {
			return nil, nil
		}
		return []Filter[T]{newFallback[T](offsets)}, nil
	}

	lines, err := s.Decompose()
	if err != nil {
		return nil, err
	}
	var filters []Filter[T]
	for _, l := range lines {
		switch {
		case l.IsIdentity():
			continue
		case l.IsVertical():
			filters = append(filters, &VerticalLine[T]{line: l})
		case l.IsHorizontal():
			filters = append(filters, &HorizontalLine[T]{line: l})
		default:
			filters = append(filters, &ObliqueLine[T]{line: l})
		}
	}
	return filters, nil
}
