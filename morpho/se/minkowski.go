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

package se

import (
	"cmp"
	"slices"

	"github.com/ajroetker/go-morpho/morpho/geom"
)

// MinkowskiSum returns the pixel set {p1 + p2 + ... : pi ∈ lines[i]},
// sorted row-major. It is the shape that successive dilations by the lines
// dilate by. The sum of no line is the origin.
func MinkowskiSum(lines []PeriodicLine) []geom.Point {
	ex, ey := 0, 0
	for _, l := range lines {
		lx, ly := l.Extent()
		ex += lx
		ey += ly
	}
	w, h := 2*ex+1, 2*ey+1
	cur := make([]bool, w*h)
	next := make([]bool, w*h)
	cur[ey*w+ex] = true

	for _, l := range lines {
		if l.K == 0 {
			continue
		}
		clear(next)
		for y := range h {
			for x := range w {
				if !cur[y*w+x] {
					continue
				}
				for i := -l.K; i <= l.K; i++ {
					// Every sum stays within the total extent.
					next[(y+i*l.Dir.Y)*w+x+i*l.Dir.X] = true
				}
			}
		}
		cur, next = next, cur
	}

	var pts []geom.Point
	for y := range h {
		for x := range w {
			if cur[y*w+x] {
				pts = append(pts, geom.Pt(x-ex, y-ey))
			}
		}
	}
	return pts
}

func sortPoints(pts []geom.Point) {
	slices.SortFunc(pts, func(a, b geom.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}
