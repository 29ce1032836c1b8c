/*
 * reflection.go, part of goHKL.
 *
 *
 * Copyright 2024 The goHKL authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package hkl

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Reflection is one row of the reflection table.
type Reflection struct {
	H    int     `json:"h"`
	K    int     `json:"k"`
	L    int     `json:"l"`
	Mult int     `json:"multiplicity"`
	D    float64 `json:"dspacing"` //in A
	Fc2  float64 `json:"fc2"`      //|Fc|^2
}

// String returns a compact one-line representation of the reflection.
func (R Reflection) String() string {
	return fmt.Sprintf("(%d %d %d) x%d d=%g |Fc|^2=%g", R.H, R.K, R.L, R.Mult, R.D, R.Fc2)
}

// Reflections is an ordered set of reflections, in the order they were read.
type Reflections []Reflection

// Len returns the number of reflections in the set.
func (R Reflections) Len() int {
	return len(R)
}

// Filter returns a new set with the reflections for which keep returns true.
// The order is preserved and the receiver is not modified.
func Filter(refl Reflections, keep func(Reflection) bool) Reflections {
	ret := make(Reflections, 0, len(refl))
	for _, v := range refl {
		if keep(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// ByResolution returns a predicate, for use with Filter, that is true for reflections with
// dmin <= d-spacing <= dmax. A non-positive dmax means no upper limit.
func ByResolution(dmin, dmax float64) func(Reflection) bool {
	return func(r Reflection) bool {
		if r.D < dmin {
			return false
		}
		return dmax <= 0 || r.D <= dmax
	}
}

// MillerMatrix returns a len(refl)x3 matrix where each row contains the h, k and l
// indices of a reflection. It returns nil for an empty set, as gonum doesn't allow
// zero-sized matrices.
func MillerMatrix(refl Reflections) *mat.Dense {
	if len(refl) == 0 {
		return nil
	}
	data := make([]float64, 0, 3*len(refl))
	for _, v := range refl {
		data = append(data, float64(v.H), float64(v.K), float64(v.L))
	}
	return mat.NewDense(len(refl), 3, data)
}
