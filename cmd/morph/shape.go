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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/go-morpho/morpho/geom"
	"github.com/ajroetker/go-morpho/morpho/se"
)

const seSyntax = `disc:R[:exact], square:R, rect:WxH, hline:K, vline:K, line:DX,DY,K or mask:FILE`

// parseSE parses a structuring element description such as "disc:7",
// "rect:9x3" or "line:1,2,4". Masks are read from a file of rows where '#'
// marks a member pixel.
func parseSE(desc string) (se.StructuringElement, error) {
	kind, arg, _ := strings.Cut(desc, ":")
	bad := func(err error) error {
		return fmt.Errorf("structuring element %q: %w (want %s)", desc, err, seSyntax)
	}

	switch kind {
	case "disc":
		radius, mode, _ := strings.Cut(arg, ":")
		r, err := strconv.ParseFloat(radius, 64)
		if err != nil {
			return nil, bad(err)
		}
		approx := se.EightLines
		switch mode {
		case "", "lines":
		case "exact":
			approx = se.Exact
		default:
			return nil, bad(fmt.Errorf("unknown disc mode %q", mode))
		}
		d, err := se.NewDisc(r, approx)
		if err != nil {
			return nil, bad(err)
		}
		return d, nil

	case "square":
		r, err := parseNonNegative(arg)
		if err != nil {
			return nil, bad(err)
		}
		return se.Square(r), nil

	case "rect":
		ws, hs, ok := strings.Cut(arg, "x")
		if !ok {
			return nil, bad(fmt.Errorf("missing WxH"))
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, bad(err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, bad(err)
		}
		r, err := se.NewRect(w, h)
		if err != nil {
			return nil, bad(err)
		}
		return r, nil

	case "hline", "vline":
		k, err := parseNonNegative(arg)
		if err != nil {
			return nil, bad(err)
		}
		if kind == "hline" {
			return se.Horizontal(k), nil
		}
		return se.Vertical(k), nil

	case "line":
		parts := strings.Split(arg, ",")
		if len(parts) != 3 {
			return nil, bad(fmt.Errorf("want DX,DY,K"))
		}
		var v [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, bad(err)
			}
			v[i] = n
		}
		l, err := se.NewPeriodicLine(geom.Pt(v[0], v[1]), v[2])
		if err != nil {
			return nil, bad(err)
		}
		return l, nil

	case "mask":
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, bad(err)
		}
		var rows []string
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				rows = append(rows, line)
			}
		}
		m, err := se.ParseMask(rows...)
		if err != nil {
			return nil, bad(err)
		}
		return m, nil
	}
	return nil, bad(fmt.Errorf("unknown kind %q", kind))
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %d", n)
	}
	return n, nil
}
