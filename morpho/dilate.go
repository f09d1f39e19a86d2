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

	"github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/tile"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// Dilate returns the dilation of img by s: every output pixel is the
// maximum of the input over the structuring element centred on it.
func Dilate[T value.Sample](img *image.Image[T], s se.StructuringElement, opts *Options[T]) (*image.Image[T], error) {
	return DilateWith(img, s, value.Sup[T](), opts)
}

// Erode returns the erosion of img by s, the dual of Dilate: every output
// pixel is the minimum of the input over the structuring element.
func Erode[T value.Sample](img *image.Image[T], s se.StructuringElement, opts *Options[T]) (*image.Image[T], error) {
	return DilateWith(img, s, value.Inf[T](), opts)
}

// DilateWith combines img over s with op and returns the result as a new
// image of the same size. Dilate and Erode are DilateWith with value.Sup
// and value.Inf.
func DilateWith[T value.Sample](img *image.Image[T], s se.StructuringElement, op value.Op[T], opts *Options[T]) (*image.Image[T], error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	out := image.NewImage[T](img.Width(), img.Height())
	if err := DilateInto(out, img, s, op, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DilateInto is DilateWith writing into dst, which must have the size of
// src and must not be src. Nothing is written to dst when an error is
// returned.
func DilateInto[T value.Sample](dst, src *image.Image[T], s se.StructuringElement, op value.Op[T], opts *Options[T]) error {
	o, err := opts.resolve()
	if err != nil {
		return err
	}
	if err := checkImage("source", src); err != nil {
		return err
	}
	if dst == nil || !image.SameSize(dst, src) {
		return fmt.Errorf("morpho: destination does not match the %dx%d source: %w",
			src.Width(), src.Height(), ErrPrecondition)
	}
	if dst == src {
		return fmt.Errorf("morpho: destination is the source image: %w", ErrPrecondition)
	}
	if s == nil {
		return fmt.Errorf("morpho: nil structuring element: %w", ErrPrecondition)
	}
	if err := se.Validate(s); err != nil {
		return fmt.Errorf("morpho: %w", err)
	}

	var c *tile.Chain[T]
	if o.DisableDecomposition {
		c, err = tile.NewFallbackChain(s, op, o.TileWidth, o.TileHeight)
	} else {
		c, err = tile.NewChain(s, op, o.TileWidth, o.TileHeight)
	}
	if err != nil {
		return fmt.Errorf("morpho: %v: %w", s, err)
	}
	if err := c.Bind(tile.ImageLoader(src, o.padding(), op), tile.ImageWriter(dst)); err != nil {
		return err
	}

	exec, release := o.executor()
	defer release()
	return c.Execute(geom.FromRect(src.Bounds()), exec)
}

func checkImage[T value.Sample](name string, img *image.Image[T]) error {
	if img == nil {
		return fmt.Errorf("morpho: nil %s image: %w", name, ErrPrecondition)
	}
	if img.Width() <= 0 || img.Height() <= 0 {
		return fmt.Errorf("morpho: empty %s image: %w", name, ErrPrecondition)
	}
	return nil
}
