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

package main

import (
	goimage "image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGray8SubImage(t *testing.T) {
	full := goimage.NewGray(goimage.Rect(0, 0, 6, 5))
	for i := range full.Pix {
		full.Pix[i] = uint8(i)
	}
	sub := full.SubImage(goimage.Rect(2, 1, 5, 4)).(*goimage.Gray)

	img := toGray8(sub)
	require.Equal(t, 3, img.Width())
	require.Equal(t, 3, img.Height())
	for y := range 3 {
		for x := range 3 {
			assert.Equal(t, full.GrayAt(x+2, y+1).Y, img.At(x, y), "(%d,%d)", x, y)
		}
	}

	back := fromGray8(img)
	assert.Equal(t, goimage.Rect(0, 0, 3, 3), back.Bounds())
	assert.Equal(t, sub.GrayAt(3, 2), back.GrayAt(1, 1))
}

func TestGrayConversionFromColor(t *testing.T) {
	m := goimage.NewRGBA(goimage.Rect(0, 0, 2, 1))
	m.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	m.Set(1, 0, color.RGBA{A: 255})
	img := toGray8(m)
	assert.Equal(t, uint8(255), img.At(0, 0))
	assert.Equal(t, uint8(0), img.At(1, 0))
	assert.False(t, isWide(m))

	wide := goimage.NewGray16(goimage.Rect(0, 0, 2, 1))
	wide.SetGray16(0, 0, color.Gray16{Y: 0x1234})
	assert.True(t, isWide(wide))
	img16 := toGray16(wide)
	assert.Equal(t, uint16(0x1234), img16.At(0, 0))
	assert.Equal(t, color.Gray16{Y: 0x1234}, fromGray16(img16).Gray16At(0, 0))
}

func TestImageFilesRoundTrip(t *testing.T) {
	src := goimage.NewGray(goimage.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = uint8(20 * i)
	}
	for _, name := range []string{"a.png", "a.tiff", "a.tif", "a.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, writeImage(path, src))
			m, err := readImage(path)
			require.NoError(t, err)
			got := toGray8(m)
			for y := range 3 {
				for x := range 4 {
					assert.Equal(t, src.GrayAt(x, y).Y, got.At(x, y), "(%d,%d)", x, y)
				}
			}
		})
	}

	wide := goimage.NewGray16(goimage.Rect(0, 0, 2, 2))
	wide.SetGray16(1, 1, color.Gray16{Y: 40000})
	path := filepath.Join(t.TempDir(), "w.tiff")
	require.NoError(t, writeImage(path, wide))
	m, err := readImage(path)
	require.NoError(t, err)
	assert.True(t, isWide(m))
	assert.Equal(t, uint16(40000), toGray16(m).At(1, 1))

	assert.ErrorIs(t, writeImage(filepath.Join(t.TempDir(), "a.jpg"), src), errImageFormat)
}

func TestParseDepth(t *testing.T) {
	for in, want := range map[string]int{"": 0, "auto": 0, "8": 8, "16": 16} {
		got, err := parseDepth(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parseDepth("12")
	assert.Error(t, err)
}
