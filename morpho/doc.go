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

// Package morpho computes grayscale morphological dilation and erosion of
// 2D images under flat structuring elements.
//
// Structuring elements that decompose into 1D lines (rectangles, periodic
// lines and the eight-line approximation of a disc) run through the van
// Herk/Gil-Werman running extremum, whose cost per pixel does not depend on
// the size of the element. Other shapes fall back to an accumulation over
// their explicit offsets.
//
// The image is processed in tiles. Each tile is loaded with a halo, run
// through the chain of line filters in scratch memory and written back, so
// the working set stays in cache. Tiles can be dispatched over a go-highway
// worker pool; the result does not depend on the number of workers.
//
// Basic usage:
//
//	disc, err := se.NewDisc(7, se.EightLines)
//	if err != nil {
//	    return err
//	}
//	out, err := morpho.Dilate(img, disc, &morpho.Options[uint8]{Parallel: true})
package morpho
