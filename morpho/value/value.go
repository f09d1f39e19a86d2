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

// Package value defines the algebraic contract morphology needs from a
// sample type: a total order, the supremum and infimum of two values and
// their identity elements.
//
// Dilation combines with Sup, whose identity is the lowest representable
// value (-Inf for floats). Erosion uses the dual, Inf, whose identity is the
// highest value (+Inf for floats).
//
// NaN samples have no place in the total order; results involving NaN are
// unspecified.
package value

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-highway/hwy"
)

// Sample lists the concrete sample types the morphology engine can be
// instantiated with. Every member is also a hwy.Lanes type, so samples can
// be processed with hwy vectors.
type Sample interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Kind selects which lattice operation an Op performs.
type Kind uint8

const (
	// KindSup combines with the maximum (dilation).
	KindSup Kind = iota
	// KindInf combines with the minimum (erosion).
	KindInf
)

func (k Kind) String() string {
	switch k {
	case KindSup:
		return "sup"
	case KindInf:
		return "inf"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Op is a commutative, associative and idempotent combine with a two-sided
// identity. The zero value of Op is not usable; use Sup or Inf.
type Op[T Sample] struct {
	kind Kind
	zero T
}

// Sup returns the supremum operation for T.
func Sup[T Sample]() Op[T] {
	return Op[T]{kind: KindSup, zero: Lowest[T]()}
}

// Inf returns the infimum operation for T.
func Inf[T Sample]() Op[T] {
	return Op[T]{kind: KindInf, zero: Highest[T]()}
}

// Kind returns which operation o performs.
func (o Op[T]) Kind() Kind { return o.kind }

// Zero returns the identity element: Combine(Zero(), v) == v for all v.
func (o Op[T]) Zero() T { return o.zero }

// Combine returns sup(a, b) or inf(a, b). On ties it returns b, which
// matches hwy.Max and hwy.Min.
func (o Op[T]) Combine(a, b T) T {
	if o.kind == KindSup {
		if a > b {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

// CombineVec is the vector form of Combine.
func (o Op[T]) CombineVec(a, b hwy.Vec[T]) hwy.Vec[T] {
	if o.kind == KindSup {
		return hwy.Max(a, b)
	}
	return hwy.Min(a, b)
}

// Dual returns the operation obtained by swapping sup and inf together with
// their identities.
func (o Op[T]) Dual() Op[T] {
	if o.kind == KindSup {
		return Inf[T]()
	}
	return Sup[T]()
}

// Lowest returns the smallest value of T, -Inf for floating point types.
func Lowest[T Sample]() T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(math.MinInt8)).(T)
	case int16:
		return any(int16(math.MinInt16)).(T)
	case int32:
		return any(int32(math.MinInt32)).(T)
	case int64:
		return any(int64(math.MinInt64)).(T)
	case float32:
		return any(float32(math.Inf(-1))).(T)
	case float64:
		return any(math.Inf(-1)).(T)
	default:
		// Unsigned types.
		return zero
	}
}

// Highest returns the largest value of T, +Inf for floating point types.
func Highest[T Sample]() T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(math.MaxInt8)).(T)
	case int16:
		return any(int16(math.MaxInt16)).(T)
	case int32:
		return any(int32(math.MaxInt32)).(T)
	case int64:
		return any(int64(math.MaxInt64)).(T)
	case uint8:
		return any(uint8(math.MaxUint8)).(T)
	case uint16:
		return any(uint16(math.MaxUint16)).(T)
	case uint32:
		return any(uint32(math.MaxUint32)).(T)
	case uint64:
		return any(uint64(math.MaxUint64)).(T)
	case float32:
		return any(float32(math.Inf(1))).(T)
	default:
		return any(math.Inf(1)).(T)
	}
}

// TypeName returns a short name of T for logs and diagnostics.
func TypeName[T Sample]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
