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
	"errors"
	"fmt"
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var errImageFormat = errors.New("unsupported image format")

// parseDepth accepts "auto" (0), "8" and "16".
func parseDepth(s string) (int, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case "8":
		return 8, nil
	case "16":
		return 16, nil
	}
	return 0, fmt.Errorf("unknown sample depth %q (want auto, 8 or 16)", s)
}

func readImage(path string) (goimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := goimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}

func writeImage(path string, m goimage.Image) (err error) {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := encode(f, m); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

type encodeFunc func(f *os.File, m goimage.Image) error

func encoderFor(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(f *os.File, m goimage.Image) error { return png.Encode(f, m) }, nil
	case ".tif", ".tiff":
		return func(f *os.File, m goimage.Image) error {
			return tiff.Encode(f, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	case ".bmp":
		return func(f *os.File, m goimage.Image) error { return bmp.Encode(f, m) }, nil
	}
	return nil, fmt.Errorf("%w: %q (want .png, .tif, .tiff or .bmp)", errImageFormat, path)
}

// isWide reports whether m carries more than 8 bits per channel.
func isWide(m goimage.Image) bool {
	switch m.ColorModel() {
	case color.Gray16Model, color.RGBA64Model, color.NRGBA64Model:
		return true
	}
	return false
}

func toGray8(m goimage.Image) *hwyimage.Image[uint8] {
	b := m.Bounds()
	out := hwyimage.NewImage[uint8](b.Dx(), b.Dy())
	if g, ok := m.(*goimage.Gray); ok {
		for y := range b.Dy() {
			start := (y+b.Min.Y-g.Rect.Min.Y)*g.Stride + (b.Min.X - g.Rect.Min.X)
			copy(out.RowSlice(y), g.Pix[start:start+b.Dx()])
		}
		return out
	}
	for y := range b.Dy() {
		row := out.RowSlice(y)
		for x := range row {
			row[x] = color.GrayModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
	return out
}

func toGray16(m goimage.Image) *hwyimage.Image[uint16] {
	b := m.Bounds()
	out := hwyimage.NewImage[uint16](b.Dx(), b.Dy())
	for y := range b.Dy() {
		row := out.RowSlice(y)
		for x := range row {
			row[x] = color.Gray16Model.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16).Y
		}
	}
	return out
}

func fromGray8(img *hwyimage.Image[uint8]) *goimage.Gray {
	out := goimage.NewGray(goimage.Rect(0, 0, img.Width(), img.Height()))
	for y := range img.Height() {
		copy(out.Pix[y*out.Stride:], img.RowSlice(y))
	}
	return out
}

func fromGray16(img *hwyimage.Image[uint16]) *goimage.Gray16 {
	out := goimage.NewGray16(goimage.Rect(0, 0, img.Width(), img.Height()))
	for y := range img.Height() {
		for x, v := range img.RowSlice(y) {
			out.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return out
}
