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
	"strings"
	"sync"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-morpho/internal/logging"
	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// LoadFunc fills dst with the source samples of dst.ROI, padding the
// pixels that fall outside the source domain. It is called concurrently on
// disjoint tiles.
type LoadFunc[T value.Sample] func(dst Tile[T])

// WriteFunc stores the samples of src at src.ROI in the destination. It is
// called concurrently on disjoint tiles.
type WriteFunc[T value.Sample] func(src Tile[T])

// State is the lifecycle stage of a Chain.
type State uint8

const (
	StateBuilt State = iota
	StateBound
	StateExecuting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateBound:
		return "bound"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Chain evaluates a dilation tile by tile. A Chain is not safe for
// concurrent use; Execute dispatches tiles on private clones.
type Chain[T value.Sample] struct {
	filters []Filter[T]
	op      value.Op[T]
	tileW   int
	tileH   int

	ar      *arena[T]
	regions []geom.Box
	load    LoadFunc[T]
	write   WriteFunc[T]
	state   State

	workers  []*Chain[T]
	haloOnce *sync.Once
}

// NewChain builds the chain dilating by s with op over tiles of at most
// tileW×tileH output pixels. Decomposable shapes get one stage per line.
func NewChain[T value.Sample](s se.StructuringElement, op value.Op[T], tileW, tileH int) (*Chain[T], error) {
	return newChain(s, op, tileW, tileH, true)
}

// NewFallbackChain is NewChain without decomposition: the whole pixel set
// of s is accumulated by a single stage.
func NewFallbackChain[T value.Sample](s se.StructuringElement, op value.Op[T], tileW, tileH int) (*Chain[T], error) {
	return newChain(s, op, tileW, tileH, false)
}

func newChain[T value.Sample](s se.StructuringElement, op value.Op[T], tileW, tileH int, decompose bool) (*Chain[T], error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil structuring element", ErrPrecondition)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrPrecondition, tileW, tileH)
	}
	filters, err := newFilters[T](s, decompose)
	if err != nil {
		return nil, err
	}

	c := &Chain[T]{
		filters:  filters,
		op:       op,
		tileW:    tileW,
		tileH:    tileH,
		regions:  make([]geom.Box, len(filters)+1),
		haloOnce: new(sync.Once),
	}
	in := c.inputRegion(geom.NewBox(0, 0, tileW, tileH))
	c.ar = newArena[T](in.Width, in.Height)
	for _, f := range c.filters {
		if h, ok := f.(*HorizontalLine[T]); ok {
			h.buf = make([]T, in.Width*in.Height)
		}
	}

	logging.Logger().Debug("morpho: chain built",
		"se", fmt.Sprint(s),
		"op", op.Kind().String(),
		"type", value.TypeName[T](),
		"filters", c.describe(),
		"tile", fmt.Sprintf("%dx%d", tileW, tileH),
		"scratch", fmt.Sprintf("%dx%d", in.Width, in.Height),
		"simd", hwy.CurrentName())
	return c, nil
}

// Filters returns the stages of the chain in execution order.
func (c *Chain[T]) Filters() []Filter[T] { return c.filters }

// TileSize returns the maximal output tile size.
func (c *Chain[T]) TileSize() (w, h int) { return c.tileW, c.tileH }

// State returns the lifecycle stage of the chain.
func (c *Chain[T]) State() State { return c.state }

// InputRegion returns the region the whole chain reads to produce out.
func (c *Chain[T]) InputRegion(out geom.Box) geom.Box {
	return c.inputRegion(out)
}

// OutputRegion returns the region the whole chain can produce from in.
func (c *Chain[T]) OutputRegion(in geom.Box) geom.Box {
	for _, f := range c.filters {
		in = f.OutputRegion(in)
	}
	return in
}

func (c *Chain[T]) inputRegion(out geom.Box) geom.Box {
	for i := len(c.filters) - 1; i >= 0; i-- {
		out = c.filters[i].InputRegion(out)
	}
	return out
}

func (c *Chain[T]) describe() string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// Bind attaches the source and destination of the chain.
func (c *Chain[T]) Bind(load LoadFunc[T], write WriteFunc[T]) error {
	if load == nil || write == nil {
		return fmt.Errorf("%w: nil load or write callback", ErrPrecondition)
	}
	if c.state == StateExecuting {
		return fmt.Errorf("%w: chain is executing", ErrPrecondition)
	}
	c.load, c.write = load, write
	c.state = StateBound
	for _, w := range c.workers {
		w.load, w.write, w.state = load, write, StateBound
	}
	return nil
}

// Clone returns a chain with the same stages and callbacks and private
// scratch memory.
func (c *Chain[T]) Clone() *Chain[T] {
	w, h := c.ar.w, c.ar.h
	filters := make([]Filter[T], len(c.filters))
	for i, f := range c.filters {
		if hf, ok := f.(*HorizontalLine[T]); ok {
			f = &HorizontalLine[T]{line: hf.line, buf: make([]T, len(hf.buf))}
		}
		filters[i] = f
	}
	return &Chain[T]{
		filters:  filters,
		op:       c.op,
		tileW:    c.tileW,
		tileH:    c.tileH,
		ar:       newArena[T](w, h),
		regions:  make([]geom.Box, len(filters)+1),
		load:     c.load,
		write:    c.write,
		state:    c.state,
		haloOnce: c.haloOnce,
	}
}

// ExecuteTile computes the output pixels of roi. roi may be larger than the
// chain tile size; the tile is then computed on an extended buffer.
func (c *Chain[T]) ExecuteTile(roi geom.Box) error {
	if c.state != StateBound && c.state != StateDone {
		return fmt.Errorf("%w: execute on a %v chain", ErrPrecondition, c.state)
	}
	if roi.Empty() {
		return fmt.Errorf("%w: empty tile %v", ErrPrecondition, roi)
	}
	c.executeTile(roi)
	return nil
}

// Execute computes every pixel of domain, tile by tile. With a nil or
// single-worker executor tiles run on the calling goroutine; otherwise
// they are dispatched on the executor's workers. The output does not
// depend on the executor.
func (c *Chain[T]) Execute(domain geom.Box, exec workerpool.Executor) error {
	if c.state != StateBound && c.state != StateDone {
		return fmt.Errorf("%w: execute on a %v chain", ErrPrecondition, c.state)
	}
	if domain.Empty() {
		return fmt.Errorf("%w: empty domain %v", ErrPrecondition, domain)
	}
	tiles := domain.Tiles(c.tileW, c.tileH)

	workers := 1
	if exec != nil {
		workers = min(exec.NumWorkers(), len(tiles))
	}
	logging.Logger().Debug("morpho: executing chain",
		"domain", domain.String(),
		"tiles", len(tiles),
		"workers", workers)

	c.state = StateExecuting
	defer func() { c.state = StateDone }()

	if workers <= 1 {
		for _, t := range tiles {
			c.executeTile(t)
		}
		return nil
	}

	for len(c.workers) < workers-1 {
		c.workers = append(c.workers, c.Clone())
	}
	free := make(chan *Chain[T], workers)
	free <- c
	for _, w := range c.workers[:workers-1] {
		free <- w
	}
	exec.ParallelForAtomic(len(tiles), func(i int) {
		w := <-free
		w.executeTile(tiles[i])
		free <- w
	})
	return nil
}

func (c *Chain[T]) executeTile(roi geom.Box) {
	n := len(c.filters)
	regions := c.regions
	regions[n] = roi
	for i := n - 1; i >= 0; i-- {
		regions[i] = c.filters[i].InputRegion(regions[i+1])
	}

	ar := c.ar
	if !ar.fits(regions[0]) {
		c.haloOnce.Do(func() {
			logging.Logger().Warn("morpho: tile exceeds chain scratch, using an extended buffer",
				"err", ErrInsufficientHalo,
				"tile", roi.String(),
				"need", fmt.Sprintf("%dx%d", regions[0].Width, regions[0].Height),
				"have", fmt.Sprintf("%dx%d", ar.w, ar.h))
		})
		ar = newArena[T](max(ar.w, regions[0].Width), max(ar.h, regions[0].Height))
	}

	cur := ar.view(0, regions[0])
	c.load(cur)
	idx := 0
	for i, f := range c.filters {
		out := regions[i+1]
		switch f := f.(type) {
		case *VerticalLine[T]:
			cur = f.apply(cur, out, ar, c.op)
		case *HorizontalLine[T]:
			cur = f.apply(cur, out, ar, c.op)
		case *ObliqueLine[T]:
			cur = f.apply(cur, out, ar, c.op)
		case *Fallback[T]:
			idx = 1 - idx
			cur = f.apply(cur, ar.view(idx, out), c.op)
		}
	}
	c.write(cur)
}
