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

package morpho_test

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-morpho/morpho"
	"github.com/ajroetker/go-morpho/morpho/se"
)

func ExampleDilate() {
	img := image.NewImage[uint8](7, 5)
	img.Set(3, 2, 9)

	out, err := morpho.Dilate(img, se.Rect{Width: 3, Height: 3}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	for y := range out.Height() {
		fmt.Println(out.RowSlice(y))
	}
	// Output:
	// [0 0 0 0 0 0 0]
	// [0 0 9 9 9 0 0]
	// [0 0 9 9 9 0 0]
	// [0 0 9 9 9 0 0]
	// [0 0 0 0 0 0 0]
}

func ExampleErode() {
	img := image.NewImage[uint8](5, 3)
	img.Fill(5)
	img.Set(2, 1, 1)

	out, err := morpho.Erode(img, se.Horizontal(1), &morpho.Options[uint8]{Padding: morpho.PadClamp})
	if err != nil {
		fmt.Println(err)
		return
	}
	for y := range out.Height() {
		fmt.Println(out.RowSlice(y))
	}
	// Output:
	// [5 5 5 5 5]
	// [5 1 1 1 5]
	// [5 5 5 5 5]
}
