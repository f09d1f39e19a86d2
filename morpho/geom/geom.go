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

// Package geom provides the integer geometry shared by the morphology
// packages: points, boxes and the tiling of a domain.
//
// A Box is described by its top-left corner and its size, which matches how
// tiles and regions of interest are handled by the tile engine. Conversion
// to and from image.Rect (exclusive bottom-right corner) is provided for
// interoperation with the go-highway image package.
package geom

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/image"
)

// Point is an integer pair. It is used both as a pixel position and as an
// offset or step vector.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by k.
func (p Point) Mul(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Box is a rectangle given by its top-left corner and its size.
// A Box is valid when both Width and Height are positive.
type Box struct {
	X, Y          int
	Width, Height int
}

// NewBox returns the box with top-left corner (x, y) and the given size.
func NewBox(x, y, width, height int) Box {
	return Box{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the box covers no pixel.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Area returns the number of pixels covered by the box.
func (b Box) Area() int {
	if b.Empty() {
		return 0
	}
	return b.Width * b.Height
}

// Min returns the top-left corner.
func (b Box) Min() Point {
	return Point{X: b.X, Y: b.Y}
}

// Max returns the exclusive bottom-right corner.
func (b Box) Max() Point {
	return Point{X: b.X + b.Width, Y: b.Y + b.Height}
}

// Inflate grows the box by dx columns on the left and right and dy rows on
// the top and bottom. Negative values shrink it.
func (b Box) Inflate(dx, dy int) Box {
	return Box{
		X:      b.X - dx,
		Y:      b.Y - dy,
		Width:  b.Width + 2*dx,
		Height: b.Height + 2*dy,
	}
}

// Shrink is the inverse of Inflate.
func (b Box) Shrink(dx, dy int) Box {
	return b.Inflate(-dx, -dy)
}

// Translate moves the box by p.
func (b Box) Translate(p Point) Box {
	b.X += p.X
	b.Y += p.Y
	return b
}

// Intersect returns the largest box contained in both b and o.
// The result is Empty when they do not overlap.
func (b Box) Intersect(o Box) Box {
	x0 := max(b.X, o.X)
	y0 := max(b.Y, o.Y)
	x1 := min(b.X+b.Width, o.X+o.Width)
	y1 := min(b.Y+b.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Box{X: x0, Y: y0}
	}
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Includes reports whether o lies entirely inside b.
// An empty o is included in any box.
func (b Box) Includes(o Box) bool {
	if o.Empty() {
		return true
	}
	return o.X >= b.X && o.Y >= b.Y &&
		o.X+o.Width <= b.X+b.Width &&
		o.Y+o.Height <= b.Y+b.Height
}

// Contains reports whether p lies inside b.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.Width &&
		p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Tiles splits b into row-major tiles of at most tw×th pixels. Tiles on the
// right and bottom edges are clipped to b. Tiles never overlap and their
// union is b.
func (b Box) Tiles(tw, th int) []Box {
	if b.Empty() || tw <= 0 || th <= 0 {
		return nil
	}
	nx := (b.Width + tw - 1) / tw
	ny := (b.Height + th - 1) / th
	tiles := make([]Box, 0, nx*ny)
	for ty := range ny {
		y := b.Y + ty*th
		h := min(th, b.Y+b.Height-y)
		for tx := range nx {
			x := b.X + tx*tw
			w := min(tw, b.X+b.Width-x)
			tiles = append(tiles, Box{X: x, Y: y, Width: w, Height: h})
		}
	}
	return tiles
}

// Rect converts b to an image.Rect.
func (b Box) Rect() image.Rect {
	return image.Rect{X0: b.X, Y0: b.Y, X1: b.X + b.Width, Y1: b.Y + b.Height}
}

// FromRect converts an image.Rect to a Box.
func FromRect(r image.Rect) Box {
	return Box{X: r.X0, Y: r.Y0, Width: r.Width(), Height: r.Height()}
}

func (b Box) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", b.X, b.Y, b.Width, b.Height)
}
