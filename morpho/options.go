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

package morpho

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-morpho/morpho/tile"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// DefaultTileSize is the tile width and height used when Options leaves
// them at zero.
const DefaultTileSize = 128

// PaddingMode selects how pixels outside the image are synthesised.
type PaddingMode = tile.PaddingMode

const (
	PadIdentity = tile.PadIdentity
	PadConstant = tile.PadConstant
	PadMirror   = tile.PadMirror
	PadClamp    = tile.PadClamp
	PadWrap     = tile.PadWrap
)

// ParsePaddingMode returns the mode named s ("identity", "constant",
// "mirror", "clamp" or "wrap").
func ParsePaddingMode(s string) (PaddingMode, error) {
	return tile.ParsePaddingMode(s)
}

// Options tunes a dilation or erosion. A nil *Options is equivalent to the
// zero value: sequential execution on 128×128 tiles with identity padding.
type Options[T value.Sample] struct {
	// TileWidth and TileHeight bound the output tile. Zero selects
	// DefaultTileSize.
	TileWidth, TileHeight int

	// Parallel dispatches tiles over a worker pool. Pool is used when set;
	// otherwise a pool of Workers workers (GOMAXPROCS when zero) is created
	// for the call and closed before it returns.
	Parallel bool
	Workers  int
	Pool     workerpool.Executor

	// Padding and PaddingValue select the border handling. PaddingValue is
	// used only with PadConstant.
	Padding      PaddingMode
	PaddingValue T

	// DisableDecomposition forces the offset accumulation path even for
	// decomposable structuring elements.
	DisableDecomposition bool
}

// resolve returns a copy of o with defaults applied, or an error if o is
// invalid. It never modifies o.
func (o *Options[T]) resolve() (Options[T], error) {
	var r Options[T]
	if o != nil {
		r = *o
	}
	if r.TileWidth < 0 || r.TileHeight < 0 {
		return r, fmt.Errorf("morpho: tile size %dx%d: %w", r.TileWidth, r.TileHeight, ErrPrecondition)
	}
	if r.Workers < 0 {
		return r, fmt.Errorf("morpho: %d workers: %w", r.Workers, ErrPrecondition)
	}
	if r.TileWidth == 0 {
		r.TileWidth = DefaultTileSize
	}
	if r.TileHeight == 0 {
		r.TileHeight = DefaultTileSize
	}
	if err := r.padding().Validate(); err != nil {
		return r, fmt.Errorf("morpho: %w", err)
	}
	return r, nil
}

func (o *Options[T]) padding() tile.Padding[T] {
	return tile.Padding[T]{Mode: o.Padding, Value: o.PaddingValue}
}

// executor returns the executor for the call and a function releasing it.
// A nil executor means sequential execution.
func (o *Options[T]) executor() (workerpool.Executor, func()) {
	if !o.Parallel {
		return nil, func() {}
	}
	if o.Pool != nil {
		if p, ok := o.Pool.(*workerpool.Pool); !ok || p != nil {
			return o.Pool, func() {}
		}
	}
	pool := workerpool.New(o.Workers)
	return pool, pool.Close
}
