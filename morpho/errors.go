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
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/tile"
)

// Errors returned by this package and the packages it builds on. Test for
// them with errors.Is.
var (
	// ErrPrecondition reports invalid arguments: nil or empty images,
	// mismatched domains, non-positive tile sizes or negative worker counts.
	ErrPrecondition = tile.ErrPrecondition

	// ErrInsufficientHalo is logged, never returned.
	ErrInsufficientHalo = tile.ErrInsufficientHalo

	ErrNotDecomposable          = se.ErrNotDecomposable
	ErrUnsupportedApproximation = se.ErrUnsupportedApproximation
	ErrInvalidShape             = se.ErrInvalidShape
)
