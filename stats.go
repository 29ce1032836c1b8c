/*
 * stats.go, part of goHKL.
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
	"math"

	"github.com/rmera/gohkl/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary contains some descriptive statistics of a set of reflections.
type Summary struct {
	N         int     `json:"reflections"`
	TotalMult int     `json:"total_multiplicity"`
	DMin      float64 `json:"dmin"` //i.e. the resolution
	DMax      float64 `json:"dmax"`
	Fc2Max    float64 `json:"fc2_max"`
	Fc2Mean   float64 `json:"fc2_mean"` //weighted by multiplicity
}

func (S *Summary) String() string {
	return fmt.Sprintf("Reflections: %d (total multiplicity %d)\nd-spacing: %g - %g A\n|Fc|^2 max: %g mean: %g",
		S.N, S.TotalMult, S.DMin, S.DMax, S.Fc2Max, S.Fc2Mean)
}

func columns(refl Reflections) (d, fc2, mult []float64) {
	d = make([]float64, len(refl))
	fc2 = make([]float64, len(refl))
	mult = make([]float64, len(refl))
	for i, v := range refl {
		d[i] = v.D
		fc2[i] = v.Fc2
		mult[i] = float64(v.Mult)
	}
	return d, fc2, mult
}

// Summarize returns descriptive statistics for refl. It returns an error wrapping
// ErrEmptySet if refl has no reflections.
func Summarize(refl Reflections) (*Summary, error) {
	if len(refl) == 0 {
		return nil, newError(ErrEmptySet, "Summarize", "")
	}
	d, fc2, mult := columns(refl)
	S := &Summary{
		N:      len(refl),
		DMin:   floats.Min(d),
		DMax:   floats.Max(d),
		Fc2Max: floats.Max(fc2),
	}
	S.TotalMult = int(floats.Sum(mult))
	if S.TotalMult > 0 {
		S.Fc2Mean = stat.Mean(fc2, mult)
	} else {
		S.Fc2Mean = stat.Mean(fc2, nil)
	}
	return S, nil
}

// RelativeIntensities returns the |Fc|^2 of each reflection divided by the largest |Fc|^2 in
// the set, in the same order as refl. If the largest value is not positive, the |Fc|^2 are
// returned unscaled.
func RelativeIntensities(refl Reflections) []float64 {
	_, fc2, _ := columns(refl)
	if len(fc2) == 0 {
		return fc2
	}
	top := floats.Max(fc2)
	if top > 0 {
		floats.Scale(1/top, fc2)
	}
	return fc2
}

// Shells bins refl in n resolution shells of equal width in 1/d^2, counting each
// reflection as many times as its multiplicity. The dividers of the returned
// histogram are in 1/d^2 units (1/A^2), so the first shell is the low-resolution one.
// Reflections with non-positive or non-finite d-spacings are ignored.
func Shells(refl Reflections, n int) (*histo.Data, error) {
	if n < 1 {
		return nil, newError(ErrEmptySet, "Shells", fmt.Sprintf("%d shells requested", n))
	}
	s := make([]float64, 0, len(refl))
	w := make([]float64, 0, len(refl))
	for _, v := range refl {
		if v.D <= 0 || math.IsInf(v.D, 0) || math.IsNaN(v.D) {
			continue
		}
		s = append(s, 1/(v.D*v.D))
		w = append(w, float64(v.Mult))
	}
	if len(s) == 0 {
		return nil, newError(ErrEmptySet, "Shells", "")
	}
	lo, hi := floats.Min(s), floats.Max(s)
	if hi-lo < 1e-9*hi {
		hi = lo*1.001 + 1e-9
	}
	hi = math.Nextafter(hi, math.Inf(1)) //so the highest resolution reflection is included.
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	return histo.NewData(dividers, s, w), nil
}
