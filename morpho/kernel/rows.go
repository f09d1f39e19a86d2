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

package kernel

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// combineRow stores op(a[i], b[i]) into dst[i] for every i < len(dst).
// dst may alias a or b.
func combineRow[T value.Sample](dst, a, b []T, op value.Op[T]) {
	n := len(dst)
	a, b = a[:n], b[:n]
	lanes := hwy.MaxLanes[T]()
	i := 0

	if lanes > 1 {
		for ; i+lanes <= n; i += lanes {
			hwy.Store(op.CombineVec(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
		}
	}
	for ; i < n; i++ {
		dst[i] = op.Combine(a[i], b[i])
	}
}

// FillRow sets every element of dst to v.
func FillRow[T value.Sample](dst []T, v T) {
	n := len(dst)
	lanes := hwy.MaxLanes[T]()
	i := 0

	if lanes > 1 && n >= lanes {
		vec := hwy.Set(v)
		for ; i+lanes <= n; i += lanes {
			hwy.Store(vec, dst[i:])
		}
	}
	for ; i < n; i++ {
		dst[i] = v
	}
}
